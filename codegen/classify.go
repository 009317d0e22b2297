package codegen

import (
	"fmt"
)

// Strategy selects how a field is read and written.
type Strategy int

const (
	StrategyInvalid Strategy = iota
	// StrategyPrimitive binds a scalar through fixed Parse/Put helpers.
	StrategyPrimitive
	// StrategyBoxedPrimitive binds a pointer to a scalar, nil maps to null.
	StrategyBoxedPrimitive
	// StrategyArrayOf binds slices or arrays nested down to a scalar leaf.
	StrategyArrayOf
	// StrategyList binds a slice of non scalar elements.
	StrategyList
	// StrategyMap binds a string keyed map.
	StrategyMap
	// StrategyEnum binds a defined type with constants by constant name.
	StrategyEnum
	// StrategyNested binds any other type through the registry.
	StrategyNested
)

func (s Strategy) String() string {
	switch s {
	case StrategyPrimitive:
		return "Primitive"
	case StrategyBoxedPrimitive:
		return "BoxedPrimitive"
	case StrategyArrayOf:
		return "ArrayOf"
	case StrategyList:
		return "List"
	case StrategyMap:
		return "Map"
	case StrategyEnum:
		return "Enum"
	case StrategyNested:
		return "Nested"
	}
	return "Invalid"
}

// scalarKinds maps bindable basic types to the suffix of their runtime helpers.
var scalarKinds = map[string]string{
	"bool":    "Bool",
	"int":     "Int",
	"int16":   "Int16",
	"int32":   "Int32",
	"int64":   "Int64",
	"uint":    "Uint",
	"uint16":  "Uint16",
	"uint32":  "Uint32",
	"uint64":  "Uint64",
	"float32": "Float32",
	"float64": "Float64",
	"string":  "String",
}

// Classification is the outcome of classifying a field type.
type Classification struct {
	Strategy Strategy
	// Elem is the leaf type of ArrayOf, the element of List and Map, or the enum type.
	Elem *TypeRef
	// Dims is the nesting depth of ArrayOf.
	Dims int
}

// Classify selects the binding strategy of a field type.
func Classify(t *TypeRef) (*Classification, error) {
	if t == nil {
		return nil, fmt.Errorf("missing type")
	}
	if err := validateScalarLeaf(t); err != nil {
		return nil, err
	}
	switch t.Kind {
	case KindBasic:
		return &Classification{Strategy: StrategyPrimitive, Elem: t}, nil
	case KindNamed:
		if t.IsEnum() {
			return &Classification{Strategy: StrategyEnum, Elem: t}, nil
		}
		if t.IsScalar() {
			return &Classification{Strategy: StrategyPrimitive, Elem: t}, nil
		}
		return &Classification{Strategy: StrategyNested, Elem: t}, nil
	case KindPointer:
		if t.Elem == nil {
			return nil, fmt.Errorf("missing element type of %v", t)
		}
		if t.Elem.IsEnum() {
			return &Classification{Strategy: StrategyEnum, Elem: t.Elem}, nil
		}
		if t.Elem.IsScalar() {
			return &Classification{Strategy: StrategyBoxedPrimitive, Elem: t.Elem}, nil
		}
		if err := validateContainer(t.Elem); err != nil {
			return nil, err
		}
		return &Classification{Strategy: StrategyNested, Elem: t}, nil
	case KindSlice, KindArray:
		if err := validateContainer(t); err != nil {
			return nil, err
		}
		leaf, dims := t, 0
		for leaf.Kind == KindSlice || leaf.Kind == KindArray {
			leaf = leaf.Elem
			dims++
		}
		if leaf.IsScalar() || (leaf.Kind == KindPointer && leaf.Elem.IsScalar()) {
			return &Classification{Strategy: StrategyArrayOf, Elem: leaf, Dims: dims}, nil
		}
		return &Classification{Strategy: StrategyList, Elem: t.Elem}, nil
	case KindMap:
		if err := validateContainer(t); err != nil {
			return nil, err
		}
		return &Classification{Strategy: StrategyMap, Elem: t.Elem}, nil
	case KindInterface:
		return &Classification{Strategy: StrategyNested, Elem: t}, nil
	case KindStruct:
		return nil, fmt.Errorf("anonymous struct type can not be bound")
	}
	return nil, fmt.Errorf("type %v must be a valid JSON type", t)
}

// validateContainer checks element and key descriptors of nested containers.
func validateContainer(t *TypeRef) error {
	for t != nil {
		switch t.Kind {
		case KindPointer, KindSlice, KindArray:
			if t.Elem == nil {
				return fmt.Errorf("missing element type of %v", t)
			}
		case KindMap:
			if t.Key == nil || t.Elem == nil {
				return fmt.Errorf("missing type argument of %v", t)
			}
			if key := t.Key; key.Scalar() != "string" || (key.Kind != KindBasic && key.Kind != KindNamed) {
				return fmt.Errorf("map key of %v must be a string", t)
			}
		case KindStruct:
			return fmt.Errorf("anonymous struct type can not be bound")
		case KindOther:
			return fmt.Errorf("type %v must be a valid JSON type", t)
		default:
			return validateScalarLeaf(t)
		}
		if err := validateScalarLeaf(t.Elem); err != nil {
			return err
		}
		t = t.Elem
	}
	return nil
}

// validateScalarLeaf rejects byte and char types which have no JSON counterpart.
func validateScalarLeaf(t *TypeRef) error {
	if t == nil {
		return nil
	}
	basic := t
	if t.Kind == KindNamed && t.Underlying != nil && t.Underlying.Kind == KindBasic {
		if t.IsEnum() {
			return nil
		}
		basic = t.Underlying
	}
	if basic.Kind != KindBasic {
		return nil
	}
	switch basic.Name {
	case "byte", "uint8", "int8":
		return fmt.Errorf("byte type %v must be a valid JSON type", t)
	case "rune":
		return fmt.Errorf("char type %v must be a valid JSON type", t)
	}
	if _, ok := scalarKinds[basic.Name]; !ok {
		return fmt.Errorf("type %v must be a valid JSON type", t)
	}
	return nil
}
