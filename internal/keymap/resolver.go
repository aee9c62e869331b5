package keymap

// Resolver maps key strings to actions in two layers. Bindings in the
// "tracklist" context resolve only while the track list is shown, and then
// shadow the other contexts.
type Resolver struct {
	base map[string]Action
	list map[string]Action
}

// NewResolver indexes bindings by key. Within a layer the later binding of a
// key wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		base: make(map[string]Action),
		list: make(map[string]Action),
	}
	for _, b := range bindings {
		layer := r.base
		if b.Context == "tracklist" {
			layer = r.list
		}
		for _, key := range b.Keys {
			layer[key] = b.Action
		}
	}
	return r
}

// Default returns a resolver over Bindings.
func Default() *Resolver {
	return NewResolver(Bindings)
}

// Resolve returns the action bound to key, or "" when nothing applies.
func (r *Resolver) Resolve(key string, listVisible bool) Action {
	if listVisible {
		if action, ok := r.list[key]; ok {
			return action
		}
	}
	return r.base[key]
}
