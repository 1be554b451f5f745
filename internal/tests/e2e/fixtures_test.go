package e2e

import (
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var confirmToken = regexp.MustCompile(`token=([A-Za-z0-9._-]+)`)

// CreateConfirmedAccount signs up through the API and follows the emailed link
func (s *TestSuite) CreateConfirmedAccount(t *testing.T, email, fullName string) {
	t.Helper()
	v := s.NewVisitor(t)

	resp := v.PostJSON("/auth/signup", map[string]string{
		"email":       email,
		"password":    testPassword,
		"full_name":   fullName,
		"redirect_to": "/admin",
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)

	var link string
	for _, msg := range s.Email.Sent() {
		if len(msg.To) == 1 && msg.To[0] == email {
			link = msg.HTML
		}
	}
	require.NotEmpty(t, link, "confirmation email was not sent to %s", email)
	m := confirmToken.FindStringSubmatch(link)
	require.Len(t, m, 2)

	resp = v.Get("/auth/confirm?token=" + m[1])
	require.Equal(t, http.StatusSeeOther, resp.Status, resp.Body)
	assert.Equal(t, "/admin", resp.Location)
}

// SignIn signs the visitor in and waits until its session store has settled
// on a session
func (v *Visitor) SignIn(email string) {
	v.t.Helper()
	resp := v.PostJSON("/auth/signin", map[string]string{"email": email, "password": testPassword})
	require.Equal(v.t, http.StatusOK, resp.Status, resp.Body)

	require.Eventually(v.t, func() bool {
		resp, ok := v.poll("/auth/session")
		return ok && resp.Status == http.StatusOK && strings.Contains(strings.ToLower(resp.Body), strings.ToLower(email))
	}, 3*time.Second, 20*time.Millisecond, "session never reached the store")
}

// AwaitAdmin polls the admin screen until cond holds for the response
func (v *Visitor) AwaitAdmin(cond func(Response) bool) Response {
	v.t.Helper()
	var last Response
	require.Eventually(v.t, func() bool {
		resp, ok := v.poll("/admin")
		if !ok {
			return false
		}
		last = resp
		return cond(resp)
	}, 3*time.Second, 20*time.Millisecond)
	return last
}
