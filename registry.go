package epoxy

import (
	"reflect"
	"sync"
)

// Registry resolves and caches converters by type.
// Resolution is idempotent: every caller receives the same converter instance for a type.
type Registry struct {
	mux        sync.Mutex
	converters map[reflect.Type]Converter
}

var orderedMapType = reflect.TypeOf((*OrderedMap)(nil))

// resolution tracks types under construction within one Resolve call.
// Built converters are published together once the outermost type completes,
// so the cache never holds a converter that forwards to an unfinished placeholder.
type resolution struct {
	pending map[reflect.Type]*placeholder
	built   map[reflect.Type]Converter
}

func newResolution() *resolution {
	return &resolution{pending: map[reflect.Type]*placeholder{}, built: map[reflect.Type]Converter{}}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry; generated converters registered with Register are visible to every registry.
func NewRegistry() *Registry {
	return &Registry{converters: map[reflect.Type]Converter{}}
}

// Len returns the number of cached converters.
func (r *Registry) Len() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.converters)
}

// Resolve returns the converter of rType, creating and caching it on first use.
func (r *Registry) Resolve(rType reflect.Type) (Converter, error) {
	if rType == nil {
		return nil, &ResolveError{Reason: "nil type"}
	}
	if converter, ok := r.lookup(rType); ok {
		return converter, nil
	}
	session := newResolution()
	if _, err := r.resolve(rType, session); err != nil {
		return nil, err
	}
	return r.publish(rType, session), nil
}

// ResolveFor returns the converter of the type of T.
func ResolveFor[T any](registry *Registry) (Converter, error) {
	return registry.Resolve(reflect.TypeOf((*T)(nil)).Elem())
}

func (r *Registry) lookup(rType reflect.Type) (Converter, bool) {
	r.mux.Lock()
	defer r.mux.Unlock()
	converter, ok := r.converters[rType]
	return converter, ok
}

// publish caches every converter built by session, entries cached by other callers win.
func (r *Registry) publish(rType reflect.Type, session *resolution) Converter {
	r.mux.Lock()
	defer r.mux.Unlock()
	for builtType, converter := range session.built {
		if _, ok := r.converters[builtType]; !ok {
			r.converters[builtType] = converter
		}
	}
	return r.converters[rType]
}

func (r *Registry) resolve(rType reflect.Type, session *resolution) (Converter, error) {
	if converter, ok := r.lookup(rType); ok {
		return converter, nil
	}
	if converter, ok := session.built[rType]; ok {
		return converter, nil
	}
	if pending, ok := session.pending[rType]; ok {
		return pending, nil
	}
	pending := &placeholder{rType: rType}
	session.pending[rType] = pending
	converter, err := r.create(rType, session)
	delete(session.pending, rType)
	if err != nil {
		return nil, err
	}
	pending.target = converter
	session.built[rType] = converter
	return converter, nil
}

func (r *Registry) create(rType reflect.Type, session *resolution) (Converter, error) {
	if factory, ok := lookupFactory(rType); ok {
		return &structValue{rType: rType, inner: NullSafe(factory(r))}, nil
	}
	if rType.Kind() == reflect.Ptr {
		if factory, ok := lookupFactory(rType.Elem()); ok {
			return NullSafe(factory(r)), nil
		}
	}
	if rType == orderedMapType {
		return NullSafe(&DynamicConverter{registry: r}), nil
	}
	if constants, ok := enums.Get(rType); ok {
		return NullSafe(NewEnumConverter(rType, constants)), nil
	}
	if converter, ok := lookupScalar(rType); ok {
		if rType.Kind() == reflect.String {
			return NullSafe(converter), nil
		}
		return converter, nil
	}
	switch rType.Kind() {
	case reflect.Interface:
		if rType.NumMethod() == 0 {
			return NullSafe(&DynamicConverter{registry: r}), nil
		}
	case reflect.Ptr:
		elem, err := r.resolve(rType.Elem(), session)
		if err != nil {
			return nil, err
		}
		return NullSafe(&pointerConverter{rType: rType, elem: elem}), nil
	case reflect.Slice:
		elem, err := r.resolve(rType.Elem(), session)
		if err != nil {
			return nil, err
		}
		return NullSafe(NewListConverter(rType, elem)), nil
	case reflect.Array:
		elem, err := r.resolve(rType.Elem(), session)
		if err != nil {
			return nil, err
		}
		return NullSafe(NewArrayConverter(rType, elem)), nil
	case reflect.Map:
		if rType.Key().Kind() != reflect.String {
			return nil, &ResolveError{Type: rType, Reason: "map key must be a string"}
		}
		elem, err := r.resolve(rType.Elem(), session)
		if err != nil {
			return nil, err
		}
		return NullSafe(NewMapConverter(rType, elem)), nil
	}
	return nil, &ResolveError{Type: rType}
}
