package http

import (
	"fmt"
	"net/http"
)

// Route binds a handler to a method and a ServeMux pattern. An empty Method
// matches every method. Patterns ending in "/" match the whole subtree.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler http.Handler
}

func (r Route) muxPattern() string {
	if r.Method == "" {
		return r.Pattern
	}
	return r.Method + " " + r.Pattern
}

// RouteTable is an ordered list of routes, registered top to bottom.
type RouteTable []Route

// Register adds every route to mux. It fails on a repeated method and
// pattern, or on any pattern the mux refuses.
func (t RouteTable) Register(mux *http.ServeMux) error {
	seen := make(map[string]string, len(t))

	for _, rt := range t {
		if rt.Handler == nil {
			return fmt.Errorf("route %q: nil handler", rt.Name)
		}

		key := rt.muxPattern()
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("route %q: %q already registered by %q", rt.Name, key, prev)
		}
		seen[key] = rt.Name

		if err := handle(mux, key, rt.Handler); err != nil {
			return fmt.Errorf("route %q: %w", rt.Name, err)
		}
	}
	return nil
}

// Lookup finds a route by name.
func (t RouteTable) Lookup(name string) (Route, bool) {
	for _, rt := range t {
		if rt.Name == name {
			return rt, true
		}
	}
	return Route{}, false
}

// handle turns ServeMux's registration panics into errors.
func handle(mux *http.ServeMux, pattern string, h http.Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	mux.Handle(pattern, h)
	return nil
}
