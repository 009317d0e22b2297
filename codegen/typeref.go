package codegen

import (
	"strconv"
	"strings"
)

// Kind classifies a type descriptor.
type Kind int

const (
	KindInvalid Kind = iota
	// KindBasic is a predeclared type, Name holds its identifier.
	KindBasic
	// KindNamed is a defined type, Underlying holds its underlying descriptor.
	KindNamed
	KindPointer
	KindSlice
	KindArray
	KindMap
	KindInterface
	// KindStruct is an anonymous struct.
	KindStruct
	// KindOther covers func, chan and other unbindable types.
	KindOther
)

// EnumConstant is a named constant of an enum type.
type EnumConstant struct {
	// Ident is the Go identifier of the constant.
	Ident string
	// Name is the JSON name of the constant.
	Name string
}

// TypeRef is a simplified, comparable type descriptor.
type TypeRef struct {
	Kind       Kind
	Name       string
	PkgPath    string
	PkgName    string
	Elem       *TypeRef
	Key        *TypeRef
	Len        int
	Underlying *TypeRef
	Enum       []EnumConstant
	// TypeArgs counts type arguments of an instantiated generic type.
	TypeArgs int
}

// Basic creates a predeclared type descriptor.
func Basic(name string) *TypeRef { return &TypeRef{Kind: KindBasic, Name: name} }

// Named creates a defined type descriptor.
func Named(pkgPath, pkgName, name string, underlying *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindNamed, PkgPath: pkgPath, PkgName: pkgName, Name: name, Underlying: underlying}
}

// PointerTo creates a pointer descriptor.
func PointerTo(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindPointer, Elem: elem} }

// SliceOf creates a slice descriptor.
func SliceOf(elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindSlice, Elem: elem} }

// ArrayOf creates a fixed length array descriptor.
func ArrayOf(length int, elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindArray, Len: length, Elem: elem}
}

// MapOf creates a map descriptor.
func MapOf(key, elem *TypeRef) *TypeRef { return &TypeRef{Kind: KindMap, Key: key, Elem: elem} }

// Any creates an empty interface descriptor.
func Any() *TypeRef { return &TypeRef{Kind: KindInterface} }

// Equal reports deep structural equality.
func (t *TypeRef) Equal(other *TypeRef) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind || t.Name != other.Name || t.PkgPath != other.PkgPath || t.Len != other.Len || t.TypeArgs != other.TypeArgs {
		return false
	}
	if t.Kind == KindNamed {
		return true
	}
	return t.Elem.Equal(other.Elem) && t.Key.Equal(other.Key)
}

// IsScalar reports whether the type is a bindable scalar: a supported basic type
// or a defined type over one that is not an enum.
func (t *TypeRef) IsScalar() bool {
	switch t.Kind {
	case KindBasic:
		_, ok := scalarKinds[t.Name]
		return ok
	case KindNamed:
		return len(t.Enum) == 0 && t.Underlying != nil && t.Underlying.Kind == KindBasic && t.Underlying.IsScalar()
	}
	return false
}

// IsEnum reports whether the type is a defined type with constants.
func (t *TypeRef) IsEnum() bool {
	return t.Kind == KindNamed && len(t.Enum) > 0
}

// Scalar returns the basic type of a scalar.
func (t *TypeRef) Scalar() string {
	if t.Kind == KindNamed && t.Underlying != nil {
		return t.Underlying.Name
	}
	return t.Name
}

// String returns the Go type expression qualified by package name; types of pkgPath are unqualified.
func (t *TypeRef) String() string { return t.Expr("") }

// Expr returns the Go type expression as seen from package pkgPath.
func (t *TypeRef) Expr(pkgPath string) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindBasic:
		return t.Name
	case KindNamed:
		if t.PkgName == "" || t.PkgPath == pkgPath {
			return t.Name
		}
		return t.PkgName + "." + t.Name
	case KindPointer:
		return "*" + t.Elem.Expr(pkgPath)
	case KindSlice:
		return "[]" + t.Elem.Expr(pkgPath)
	case KindArray:
		return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.Expr(pkgPath)
	case KindMap:
		return "map[" + t.Key.Expr(pkgPath) + "]" + t.Elem.Expr(pkgPath)
	case KindInterface:
		return "interface{}"
	case KindStruct:
		return "struct{...}"
	}
	if t.Name != "" {
		return t.Name
	}
	return "<invalid>"
}

// Mangle returns an identifier fragment unique for the type expression.
func (t *TypeRef) Mangle(pkgPath string) string {
	switch t.Kind {
	case KindBasic:
		return exportName(t.Name)
	case KindNamed:
		if t.PkgPath == pkgPath || t.PkgName == "" {
			return exportName(t.Name)
		}
		return exportName(t.PkgName) + exportName(t.Name)
	case KindPointer:
		return "Ptr" + t.Elem.Mangle(pkgPath)
	case KindSlice:
		return "SliceOf" + t.Elem.Mangle(pkgPath)
	case KindArray:
		return "Array" + strconv.Itoa(t.Len) + "Of" + t.Elem.Mangle(pkgPath)
	case KindMap:
		return "MapOf" + t.Key.Mangle(pkgPath) + "To" + t.Elem.Mangle(pkgPath)
	case KindInterface:
		return "Any"
	}
	return "Invalid"
}

// Imports collects package paths referenced by the type expression.
func (t *TypeRef) Imports(pkgPath string, dest map[string]string) {
	if t == nil {
		return
	}
	if t.Kind == KindNamed {
		if t.PkgPath != "" && t.PkgPath != pkgPath {
			dest[t.PkgPath] = t.PkgName
		}
		return
	}
	t.Elem.Imports(pkgPath, dest)
	t.Key.Imports(pkgPath, dest)
}

func exportName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
