// Package loader reads a Go package directory into a codegen.Source.
package loader

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/viant/epoxy/codegen"
	"golang.org/x/mod/modfile"
)

// Directive names the method invoked once a host type has been decoded.
const Directive = "//epoxy:complete"

// Load parses and type checks the package in dir; files produced by a previous generation are skipped.
func Load(dir string, config *codegen.Config) (*codegen.Source, error) {
	if config == nil {
		config = codegen.DefaultConfig()
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	files, err := parseDir(fset, dir, config)
	if err != nil {
		return nil, err
	}
	pkgPath, err := packagePath(dir)
	if err != nil {
		return nil, err
	}
	var typeErrors []error
	checker := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			typeErrors = append(typeErrors, err)
		},
	}
	pkg, _ := checker.Check(pkgPath, fset, files, nil)
	for _, typeError := range typeErrors {
		// references to skipped generated declarations are expected
		if strings.Contains(typeError.Error(), "undefined: ") {
			continue
		}
		return nil, fmt.Errorf("failed to type check %v: %w", pkgPath, typeError)
	}
	l := &loader{pkg: pkg, enums: map[*types.TypeName][]codegen.EnumConstant{}}
	source := &codegen.Source{PkgName: pkg.Name(), PkgPath: pkgPath, Dir: dir}
	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if host := l.hostType(gd, ts); host != nil {
					source.Types = append(source.Types, host)
				}
			}
		}
	}
	return source, nil
}

func parseDir(fset *token.FileSet, dir string, config *codegen.Config) ([]*ast.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ret []*ast.File
	pkgName := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if strings.HasSuffix(name, config.FileSuffix) || name == config.EnumFile {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if pkgName == "" {
			pkgName = file.Name.Name
		}
		if file.Name.Name != pkgName {
			continue
		}
		ret = append(ret, file)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("no go files in %v", dir)
	}
	return ret, nil
}

// packagePath derives the import path of dir from the nearest go.mod.
func packagePath(dir string) (string, error) {
	for parent := dir; ; parent = filepath.Dir(parent) {
		data, err := os.ReadFile(filepath.Join(parent, "go.mod"))
		if err == nil {
			modulePath := modfile.ModulePath(data)
			if modulePath == "" {
				return "", fmt.Errorf("missing module directive in %v", filepath.Join(parent, "go.mod"))
			}
			rel, err := filepath.Rel(parent, dir)
			if err != nil {
				return "", err
			}
			return path.Join(modulePath, filepath.ToSlash(rel)), nil
		}
		if next := filepath.Dir(parent); next == parent {
			return filepath.Base(dir), nil
		}
	}
}

type loader struct {
	pkg   *types.Package
	enums map[*types.TypeName][]codegen.EnumConstant
}

func (l *loader) hostType(gd *ast.GenDecl, ts *ast.TypeSpec) *codegen.HostType {
	obj, ok := l.pkg.Scope().Lookup(ts.Name.Name).(*types.TypeName)
	if !ok {
		return nil
	}
	structType, ok := obj.Type().Underlying().(*types.Struct)
	if !ok {
		return nil
	}
	ret := &codegen.HostType{Name: ts.Name.Name, Alias: ts.Assign.IsValid()}
	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			ret.TypeParams += len(field.Names)
		}
	}
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)
		ret.Fields = append(ret.Fields, &codegen.Field{
			Name:     field.Name(),
			Tag:      reflect.StructTag(structType.Tag(i)),
			Type:     l.typeRef(field.Type()),
			Embedded: field.Embedded(),
		})
	}
	doc := ts.Doc
	if doc == nil {
		doc = gd.Doc
	}
	if method := completeMethod(doc); method != "" {
		ret.Complete = method
		ret.CompleteSignature = l.signature(obj.Type(), method)
	}
	return ret
}

func completeMethod(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	for _, comment := range doc.List {
		if !strings.HasPrefix(comment.Text, Directive) {
			continue
		}
		if fields := strings.Fields(strings.TrimPrefix(comment.Text, Directive)); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

// signature formats the signature of the method name of *t without parameter names, empty if none.
func (l *loader) signature(t types.Type, name string) string {
	selection := types.NewMethodSet(types.NewPointer(t)).Lookup(l.pkg, name)
	if selection == nil {
		return ""
	}
	sig, ok := selection.Type().(*types.Signature)
	if !ok {
		return ""
	}
	qualifier := types.RelativeTo(l.pkg)
	tuple := func(vars *types.Tuple) []string {
		var ret []string
		for i := 0; i < vars.Len(); i++ {
			ret = append(ret, types.TypeString(vars.At(i).Type(), qualifier))
		}
		return ret
	}
	params := tuple(sig.Params())
	if sig.Variadic() && len(params) > 0 {
		params[len(params)-1] = "..." + strings.TrimPrefix(params[len(params)-1], "[]")
	}
	ret := "func(" + strings.Join(params, ", ") + ")"
	switch results := tuple(sig.Results()); len(results) {
	case 0:
	case 1:
		ret += " " + results[0]
	default:
		ret += " (" + strings.Join(results, ", ") + ")"
	}
	return ret
}

func (l *loader) typeRef(t types.Type) *codegen.TypeRef {
	switch actual := types.Unalias(t).(type) {
	case *types.Basic:
		return codegen.Basic(actual.Name())
	case *types.Named:
		obj := actual.Obj()
		if obj.Pkg() == nil {
			return &codegen.TypeRef{Kind: codegen.KindOther, Name: obj.Name()}
		}
		var underlying *codegen.TypeRef
		if basic, ok := actual.Underlying().(*types.Basic); ok {
			underlying = codegen.Basic(basic.Name())
		} else {
			underlying = &codegen.TypeRef{Kind: kindOf(actual.Underlying())}
		}
		ret := codegen.Named(obj.Pkg().Path(), obj.Pkg().Name(), obj.Name(), underlying)
		ret.TypeArgs = actual.TypeArgs().Len()
		if underlying.Kind == codegen.KindBasic && obj.Pkg() == l.pkg {
			ret.Enum = l.enumConstants(obj)
		}
		return ret
	case *types.Pointer:
		return codegen.PointerTo(l.typeRef(actual.Elem()))
	case *types.Slice:
		return codegen.SliceOf(l.typeRef(actual.Elem()))
	case *types.Array:
		return codegen.ArrayOf(int(actual.Len()), l.typeRef(actual.Elem()))
	case *types.Map:
		return codegen.MapOf(l.typeRef(actual.Key()), l.typeRef(actual.Elem()))
	case *types.Interface:
		if actual.Empty() {
			return codegen.Any()
		}
		return &codegen.TypeRef{Kind: codegen.KindOther, Name: t.String()}
	case *types.Struct:
		return &codegen.TypeRef{Kind: codegen.KindStruct}
	}
	return &codegen.TypeRef{Kind: codegen.KindOther, Name: t.String()}
}

func kindOf(t types.Type) codegen.Kind {
	switch t.(type) {
	case *types.Basic:
		return codegen.KindBasic
	case *types.Pointer:
		return codegen.KindPointer
	case *types.Slice:
		return codegen.KindSlice
	case *types.Array:
		return codegen.KindArray
	case *types.Map:
		return codegen.KindMap
	case *types.Interface:
		return codegen.KindInterface
	case *types.Struct:
		return codegen.KindStruct
	}
	return codegen.KindOther
}

// enumConstants returns the package level constants of the defined type in declaration order.
// String constants are named by their value, other constants by their identifier.
func (l *loader) enumConstants(obj *types.TypeName) []codegen.EnumConstant {
	if ret, ok := l.enums[obj]; ok {
		return ret
	}
	var consts []*types.Const
	scope := l.pkg.Scope()
	for _, name := range scope.Names() {
		candidate, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(candidate.Type(), obj.Type()) {
			continue
		}
		consts = append(consts, candidate)
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })
	var ret []codegen.EnumConstant
	for _, item := range consts {
		name := item.Name()
		if item.Val().Kind() == constant.String {
			name = constant.StringVal(item.Val())
		}
		ret = append(ret, codegen.EnumConstant{Ident: item.Name(), Name: name})
	}
	l.enums[obj] = ret
	return ret
}
