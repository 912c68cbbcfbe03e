package engine

import "context"

// Router sends analysis of selected modes to a dedicated backend and
// everything else, lookups included, to Default.
type Router struct {
	Default Engine
	routes  map[string]Engine
}

// NewRouter creates a Router falling back to def.
func NewRouter(def Engine) *Router {
	return &Router{Default: def, routes: make(map[string]Engine)}
}

// Route sends analysis for the named modes to e.
func (r *Router) Route(e Engine, modeNames ...string) {
	for _, name := range modeNames {
		r.routes[name] = e
	}
}

func (r *Router) Analyze(ctx context.Context, input string, mode Mode, format string) (string, error) {
	if e, ok := r.routes[mode.Name]; ok {
		return e.Analyze(ctx, input, mode, format)
	}
	return r.Default.Analyze(ctx, input, mode, format)
}

func (r *Router) Lookup(ctx context.Context, query, dir, binary string) (string, error) {
	return r.Default.Lookup(ctx, query, dir, binary)
}
