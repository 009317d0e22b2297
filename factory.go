package epoxy

import (
	"reflect"
	"sort"
	"sync"
)

// Factory creates the generated converter of a host type.
type Factory func(registry *Registry) Converter

// syncMap is a thread-safe map
type syncMap[K comparable, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

func (m *syncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

func (m *syncMap[K, V]) Put(k K, v V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.m[k] = v
}

func (m *syncMap[K, V]) Keys() []K {
	m.mux.RLock()
	defer m.mux.RUnlock()
	ret := make([]K, 0, len(m.m))
	for k := range m.m {
		ret = append(ret, k)
	}
	return ret
}

func newSyncMap[K comparable, V any]() *syncMap[K, V] {
	return &syncMap[K, V]{m: make(map[K]V)}
}

var (
	factories = newSyncMap[reflect.Type, Factory]()
	enums     = newSyncMap[reflect.Type, []EnumConstant]()
)

// Register associates a struct type with the factory of its generated converter.
// Generated code calls Register from init.
func Register(rType reflect.Type, factory Factory) {
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	factories.Put(rType, factory)
}

// RegisterEnum declares the constants of an enum type. Registering the same type again replaces its constants.
func RegisterEnum(rType reflect.Type, constants ...EnumConstant) {
	enums.Put(rType, constants)
}

// Registered returns struct types with a registered converter factory sorted by name.
func Registered() []reflect.Type {
	ret := factories.Keys()
	sort.Slice(ret, func(i, j int) bool { return ret[i].String() < ret[j].String() })
	return ret
}

func lookupFactory(rType reflect.Type) (Factory, bool) {
	if rType.Kind() != reflect.Struct {
		return nil, false
	}
	return factories.Get(rType)
}
