package handlers

import (
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/middleware"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
)

// GuardEvents streams the route guard decisions of one mount as server-sent
// events. The first event carries the decision at mount time; later events
// are sent only when the decision changes.
func GuardEvents(heartbeat time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := middleware.Store(c)
		guard := session.NewGuard()

		states := newLatestState()
		unsubscribe := store.Subscribe(states.offer)
		defer unsubscribe()

		d, _ := guard.Observe(store.Snapshot())
		c.Header("Cache-Control", "no-store")
		c.SSEvent("guard", decisionPayload(d))
		c.Writer.Flush()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case <-store.Done():
				return false
			case <-ticker.C:
				c.SSEvent("ping", "")
				return true
			case st := <-states.ch:
				if d, changed := guard.Observe(st); changed {
					c.SSEvent("guard", decisionPayload(d))
				}
				return true
			}
		})
	}
}

func decisionPayload(d session.Decision) gin.H {
	return gin.H{"decision": d, "redirect": d.Redirect()}
}

// latestState is a one-slot mailbox: a new state replaces one not yet read
type latestState struct {
	mu sync.Mutex
	ch chan session.State
}

func newLatestState() *latestState {
	return &latestState{ch: make(chan session.State, 1)}
}

func (l *latestState) offer(st session.State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.ch:
	default:
	}
	l.ch <- st
}
