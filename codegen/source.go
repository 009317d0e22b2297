package codegen

import "reflect"

// Source describes one package of host type candidates.
type Source struct {
	PkgName string
	PkgPath string
	Dir     string
	Types   []*HostType
}

// HostType describes a named struct type.
type HostType struct {
	Name string
	// TypeParams counts type parameters of a generic type.
	TypeParams int
	// Alias is set for type aliases.
	Alias  bool
	Fields []*Field
	// Complete names the method invoked after decoding, taken from the `epoxy:complete` directive.
	Complete string
	// CompleteSignature is the signature found for Complete, empty when no such method exists.
	CompleteSignature string
}

// Field describes a struct field.
type Field struct {
	Name     string
	Tag      reflect.StructTag
	Type     *TypeRef
	Embedded bool
}

// Lookup returns the host type of name.
func (s *Source) Lookup(name string) *HostType {
	for _, candidate := range s.Types {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}
