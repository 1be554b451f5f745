package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// Function handles one invocation. The result is returned to the caller as JSON.
type Function func(ctx context.Context, body json.RawMessage) (any, error)

// Registry runs named functions in process. It implements domain.FunctionInvoker.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Function
	log   zerolog.Logger
}

// NewRegistry creates an empty Registry
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		funcs: make(map[string]Function),
		log:   log.With().Str("component", "functions").Logger(),
	}
}

var _ domain.FunctionInvoker = (*Registry)(nil)

// Register binds fn to name, replacing any previous binding
func (r *Registry) Register(name string, fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Names lists the registered functions
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke implements domain.FunctionInvoker
func (r *Registry) Invoke(ctx context.Context, name string, body any) ([]byte, error) {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFunctionNotFound, name)
	}

	raw, ok := body.(json.RawMessage)
	if !ok {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode function body: %w", err)
		}
	}

	result, err := fn(ctx, raw)
	if err != nil {
		r.log.Error().Err(err).Str("function", name).Msg("function failed")
		return nil, fmt.Errorf("function %s: %w", name, err)
	}
	r.log.Debug().Str("function", name).Msg("function completed")
	return json.Marshal(result)
}
