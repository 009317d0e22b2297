package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"
)

const (
	runtimePkg = "github.com/viant/epoxy"
	ioPkg      = "github.com/viant/epoxy/jsonio"
)

type importView struct {
	Name string
	Path string
}

type tokenView struct {
	Field string
	Expr  string
}

type binderView struct {
	PkgName     string
	Imports     []importView
	Type        string
	Binder      string
	ParentBound bool
	Parent      string
	Tokens      []tokenView
	Decode      []string
	Encode      []string
}

type enumView struct {
	Expr      string
	Constants []EnumConstant
}

type enumFileView struct {
	PkgName string
	Imports []importView
	Enums   []enumView
}

var binderTemplate = template.Must(template.New("binder").Parse(`// Code generated by epoxygen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Binder}} binds {{.Type}} to its JSON representation.
type {{.Binder}} struct {
	registry *epoxy.Registry
{{- if .ParentBound}}
	parent *{{.Parent}}
{{- end}}
{{- range .Tokens}}
	{{.Field}} reflect.Type
{{- end}}
}

// New{{.Binder}} creates a binder for {{.Type}}, delegated fields are resolved with registry.
func New{{.Binder}}(registry *epoxy.Registry) *{{.Binder}} {
	return &{{.Binder}}{
		registry: registry,
{{- if .ParentBound}}
		parent: New{{.Parent}}(registry),
{{- end}}
{{- range .Tokens}}
		{{.Field}}: reflect.TypeOf((*{{.Expr}})(nil)).Elem(),
{{- end}}
	}
}

func init() {
	epoxy.Register(reflect.TypeOf((*{{.Type}})(nil)).Elem(), func(registry *epoxy.Registry) epoxy.Converter {
		return New{{.Binder}}(registry)
	})
}

// FromJSON decodes the next JSON object into a new {{.Type}}, null yields nil.
func (b *{{.Binder}}) FromJSON(r *jsonio.Reader) (*{{.Type}}, error) {
	object, err := r.ReadObject()
	if err != nil || object == nil {
		return nil, err
	}
	model := &{{.Type}}{}
	if err = b.ParseJSON(model, object); err != nil {
		return nil, err
	}
	return model, nil
}

// ParseJSON populates model from object, inherited fields first.
func (b *{{.Binder}}) ParseJSON(model *{{.Type}}, object *jsonio.Object) error {
{{- range .Decode}}
{{.}}
{{- end}}
	return nil
}

// ToJSON writes model as a JSON object, nil is written as null.
func (b *{{.Binder}}) ToJSON(w *jsonio.Writer, model *{{.Type}}) error {
	if model == nil {
		w.Null()
		return nil
	}
	w.BeginObject()
	if err := b.ParseModel(w, model); err != nil {
		return err
	}
	w.EndObject()
	return nil
}

// ParseModel writes the members of model, inherited fields first.
func (b *{{.Binder}}) ParseModel(w *jsonio.Writer, model *{{.Type}}) error {
{{- range .Encode}}
{{.}}
{{- end}}
	return nil
}

// Decode implements epoxy.Converter.
func (b *{{.Binder}}) Decode(r *jsonio.Reader) (interface{}, error) {
	model, err := b.FromJSON(r)
	if err != nil || model == nil {
		return nil, err
	}
	return model, nil
}

// Encode implements epoxy.Converter.
func (b *{{.Binder}}) Encode(w *jsonio.Writer, value interface{}) error {
	switch actual := value.(type) {
	case *{{.Type}}:
		return b.ToJSON(w, actual)
	case {{.Type}}:
		return b.ToJSON(w, &actual)
	}
	return epoxy.NewTypeMismatchError(reflect.TypeOf((*{{.Type}})(nil)), value)
}
`))

var enumTemplate = template.Must(template.New("enums").Parse(`// Code generated by epoxygen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

func init() {
{{- range .Enums}}
	epoxy.RegisterEnum(reflect.TypeOf((*{{.Expr}})(nil)).Elem(),
{{- range .Constants}}
		epoxy.EnumConstant{Name: {{printf "%q" .Name}}, Value: {{.Ident}}},
{{- end}}
	)
{{- end}}
}
`))

func (g *Generator) emitBinding(source *Source, binding *HostBinding) (*File, error) {
	view := &binderView{
		PkgName: source.PkgName,
		Type:    binding.TypeName,
		Binder:  binding.BinderName(g.config.Suffix),
	}
	imports := map[string]string{}
	tokens := map[string]bool{}
	if binding.Parent != nil {
		view.ParentBound = true
		view.Parent = binding.Parent.BinderName(g.config.Suffix)
		view.Decode = append(view.Decode, parentDecode(binding))
		view.Encode = append(view.Encode, parentEncode(binding))
	}
	for _, field := range binding.Fields {
		field.Type.Imports(source.PkgPath, imports)
		decode, encode, typeToken := fieldStatements(source.PkgPath, field)
		view.Decode = append(view.Decode, decode)
		view.Encode = append(view.Encode, encode)
		if typeToken == "" || tokens[typeToken] {
			continue
		}
		tokens[typeToken] = true
		view.Tokens = append(view.Tokens, tokenView{Field: typeToken, Expr: field.Type.Expr(source.PkgPath)})
	}
	if binding.Complete != "" {
		view.Decode = append(view.Decode, fmt.Sprintf("\tif err := model.%v(object.Raw()); err != nil {\n\t\treturn err\n\t}", binding.Complete))
	}
	view.Imports = sortedImports(imports, "reflect", runtimePkg, ioPkg)
	content, err := render(binderTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %v: %w", view.Binder, err)
	}
	return &File{Name: g.fileName(binding.TypeName), Content: content}, nil
}

func (g *Generator) emitEnums(source *Source, bindings []*HostBinding) (*File, error) {
	found := map[string]*TypeRef{}
	for _, binding := range bindings {
		for _, field := range binding.Fields {
			collectEnums(source.PkgPath, field.Type, found)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}
	view := &enumFileView{PkgName: source.PkgName}
	for _, enum := range found {
		view.Enums = append(view.Enums, enumView{Expr: enum.Expr(source.PkgPath), Constants: enum.Enum})
	}
	sort.Slice(view.Enums, func(i, j int) bool { return view.Enums[i].Expr < view.Enums[j].Expr })
	view.Imports = sortedImports(map[string]string{}, "reflect", runtimePkg)
	content, err := render(enumTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("failed to generate enum registrations: %w", err)
	}
	return &File{Name: g.config.EnumFile, Content: content}, nil
}

// collectEnums finds enums declared in pkgPath, enums of other packages are registered by their own generated code.
func collectEnums(pkgPath string, t *TypeRef, found map[string]*TypeRef) {
	if t == nil {
		return
	}
	if t.IsEnum() {
		if t.PkgPath == pkgPath {
			found[t.Name] = t
		}
		return
	}
	if t.Kind == KindNamed {
		return
	}
	collectEnums(pkgPath, t.Elem, found)
	collectEnums(pkgPath, t.Key, found)
}

func sortedImports(imports map[string]string, fixed ...string) []importView {
	var ret []importView
	for _, path := range fixed {
		delete(imports, path)
		ret = append(ret, importView{Path: path})
	}
	var paths []string
	for path := range imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		view := importView{Path: path}
		if name := imports[path]; name != "" && !strings.HasSuffix(path, "/"+name) && path != name {
			view.Name = name
		}
		ret = append(ret, view)
	}
	return ret
}

func render(tmpl *template.Template, view interface{}) ([]byte, error) {
	buffer := new(bytes.Buffer)
	if err := tmpl.Execute(buffer, view); err != nil {
		return nil, err
	}
	formatted, err := format.Source(buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, buffer.Bytes())
	}
	return formatted, nil
}

// fieldStatements renders the decode and encode statements of field and the binder token it needs.
func fieldStatements(pkgPath string, field *FieldBinding) (decode string, encode string, typeToken string) {
	key := fmt.Sprintf("%q", field.JSONKey)
	optional := fmt.Sprint(field.Optional)
	target := "model." + field.FieldName
	expr := field.Type.Expr(pkgPath)

	var call string
	switch {
	case field.Strategy == StrategyPrimitive:
		helper := scalarKinds[field.Type.Scalar()]
		call = fmt.Sprintf("epoxy.Parse%v(object, %v, %v)", helper, key, optional)
		assign, encodeValue := "value", target
		if field.Type.Kind == KindNamed {
			assign = fmt.Sprintf("%v(value)", expr)
			encodeValue = fmt.Sprintf("%v(%v)", field.Type.Scalar(), target)
		}
		encode = fmt.Sprintf("\tepoxy.Put%v(w, %v, %v)", helper, key, encodeValue)
		return decodeBlock(call, target, assign), encode, ""
	case field.Strategy == StrategyBoxedPrimitive:
		helper := scalarKinds[field.Elem.Scalar()]
		call = fmt.Sprintf("epoxy.Parse%vPtr(object, %v, %v)", helper, key, optional)
		assign, encodeValue := "value", target
		if field.Elem.Kind == KindNamed {
			assign = fmt.Sprintf("(%v)(value)", expr)
			encodeValue = fmt.Sprintf("(*%v)(%v)", field.Elem.Scalar(), target)
		}
		encode = fmt.Sprintf("\tepoxy.Put%vPtr(w, %v, %v, %v)", helper, key, encodeValue, optional)
		return decodeBlock(call, target, assign), encode, ""
	case isDirectSlice(field):
		helper := scalarKinds[field.Elem.Name]
		call = fmt.Sprintf("epoxy.Parse%vSlice(object, %v, %v)", helper, key, optional)
		encode = fmt.Sprintf("\tepoxy.Put%vSlice(w, %v, %v, %v)", helper, key, target, optional)
		return decodeBlock(call, target, "value"), encode, ""
	}
	typeToken = "type" + field.Type.Mangle(pkgPath)
	call = fmt.Sprintf("epoxy.ParseValue[%v](b.registry, object, %v, %v, b.%v)", expr, key, optional, typeToken)
	encode = fmt.Sprintf("\tif err := epoxy.PutValue(b.registry, w, %v, %v, %v, b.%v); err != nil {\n\t\treturn err\n\t}", key, target, optional, typeToken)
	return decodeBlock(call, target, "value"), encode, typeToken
}

// isDirectSlice reports a one dimensional slice of a predeclared scalar.
func isDirectSlice(field *FieldBinding) bool {
	return field.Strategy == StrategyArrayOf && field.Dims == 1 && field.Type.Kind == KindSlice && field.Elem.Kind == KindBasic
}

func decodeBlock(call, target, assign string) string {
	return fmt.Sprintf("\t{\n\t\tvalue, err := %v\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n\t\t%v = %v\n\t}", call, target, assign)
}

func parentDecode(binding *HostBinding) string {
	var statements strings.Builder
	expr := "model"
	for _, step := range binding.ParentPath {
		expr += "." + step.Field
		if step.Pointer {
			fmt.Fprintf(&statements, "\tif %v == nil {\n\t\t%v = &%v{}\n\t}\n", expr, expr, step.Type)
		}
	}
	fmt.Fprintf(&statements, "\tif err := b.parent.ParseJSON(%v, object); err != nil {\n\t\treturn err\n\t}", parentArg(binding, expr))
	return statements.String()
}

func parentEncode(binding *HostBinding) string {
	var conditions []string
	expr := "model"
	for _, step := range binding.ParentPath {
		expr += "." + step.Field
		if step.Pointer {
			conditions = append(conditions, expr+" != nil")
		}
	}
	call := fmt.Sprintf("if err := b.parent.ParseModel(w, %v); err != nil {\n\t\treturn err\n\t}", parentArg(binding, expr))
	if len(conditions) == 0 {
		return "\t" + call
	}
	return fmt.Sprintf("\tif %v {\n\t%v\n\t}", strings.Join(conditions, " && "), strings.ReplaceAll(call, "\n", "\n\t"))
}

func parentArg(binding *HostBinding, expr string) string {
	if binding.ParentPath[len(binding.ParentPath)-1].Pointer {
		return expr
	}
	return "&" + expr
}
