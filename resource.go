package burrow

import (
	"github.com/yohamta/donburi"
)

// Resource is a typed handle to a world singleton. The value lives in a
// donburi component attached to an entity that holds nothing else, so each
// world stores at most one value per Resource.
//
// Declare resources as package variables, the same way donburi component
// types are declared:
//
//	var Score = burrow.NewResource[int]("Score")
type Resource[T any] struct {
	name      string
	component *donburi.ComponentType[T]
}

// NewResource creates a resource handle. name is used in diagnostics.
func NewResource[T any](name string) *Resource[T] {
	return &Resource[T]{
		name:      name,
		component: donburi.NewComponentType[T](),
	}
}

// Name returns the diagnostic name given to NewResource.
func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) entry(w donburi.World) (*donburi.Entry, bool) {
	return r.component.First(w)
}

// Insert stores v, replacing any previous value.
func (r *Resource[T]) Insert(w donburi.World, v T) {
	if e, ok := r.entry(w); ok {
		r.component.SetValue(e, v)
		return
	}
	e := w.Entry(w.Create(r.component))
	r.component.SetValue(e, v)
}

// Get returns a pointer to the stored value. The pointer stays valid until
// the resource is removed.
func (r *Resource[T]) Get(w donburi.World) (*T, bool) {
	e, ok := r.entry(w)
	if !ok {
		return nil, false
	}
	return r.component.Get(e), true
}

// MustGet is like Get but panics with a *ProtocolError when the resource was
// never inserted.
func (r *Resource[T]) MustGet(w donburi.World) *T {
	v, ok := r.Get(w)
	if !ok {
		protocolPanic("resource", "%s is not inserted; is the plugin installed?", r.name)
	}
	return v
}

// Has reports whether the resource is stored in w.
func (r *Resource[T]) Has(w donburi.World) bool {
	_, ok := r.entry(w)
	return ok
}

// GetOrInsert returns the stored value, inserting init() first if there is
// none.
func (r *Resource[T]) GetOrInsert(w donburi.World, init func() T) *T {
	if v, ok := r.Get(w); ok {
		return v
	}
	r.Insert(w, init())
	return r.MustGet(w)
}

// Replace stores v and returns the previous value, or the zero value when
// there was none.
func (r *Resource[T]) Replace(w donburi.World, v T) T {
	var old T
	if p, ok := r.Get(w); ok {
		old = *p
	}
	r.Insert(w, v)
	return old
}

// Remove deletes the resource and returns its value.
func (r *Resource[T]) Remove(w donburi.World) (T, bool) {
	e, ok := r.entry(w)
	if !ok {
		var zero T
		return zero, false
	}
	v := *r.component.Get(e)
	w.Remove(e.Entity())
	return v, true
}
