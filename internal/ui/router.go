package ui

import "fmt"

// Router maps the screen name a page declares to its descriptor. The
// dashboard, reports, and settings screens are not list screens and are
// handled by the hosting adapter directly.
type Router struct {
	screens map[string]EntityDescriptor
}

// NewRouter indexes the given descriptors by screen name.
func NewRouter(descs ...EntityDescriptor) *Router {
	r := &Router{screens: make(map[string]EntityDescriptor, len(descs))}
	for _, d := range descs {
		r.screens[d.Screen] = d
	}
	return r
}

// Lookup resolves a screen name. Unknown names return an error whose
// message is rendered inline in place of the screen.
func (r *Router) Lookup(screen string) (EntityDescriptor, error) {
	d, ok := r.screens[screen]
	if !ok {
		return EntityDescriptor{}, fmt.Errorf("Unknown screen: %s", screen)
	}
	return d, nil
}

// Screens lists the registered screen names.
func (r *Router) Screens() []string {
	names := make([]string, 0, len(r.screens))
	for name := range r.screens {
		names = append(names, name)
	}
	return names
}
