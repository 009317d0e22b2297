package codegen

import (
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shopSource() *Source {
	celsius := Named(testPkg, "shop", "Celsius", Basic("float64"))
	color := Named(testPkg, "shop", "Color", Basic("string"))
	color.Enum = []EnumConstant{{Ident: "Red", Name: "RED"}, {Ident: "Green", Name: "GREEN"}}
	structType := &TypeRef{Kind: KindStruct}
	entity := Named(testPkg, "shop", "Entity", structType)
	item := Named(testPkg, "shop", "Item", structType)
	timeType := Named("time", "time", "Time", structType)
	return &Source{
		PkgName: "shop",
		PkgPath: testPkg,
		Types: []*HostType{
			{
				Name: "Entity",
				Fields: []*Field{
					{Name: "ID", Tag: `epoxy:"id"`, Type: Basic("int")},
				},
			},
			{
				Name:              "Order",
				Complete:          "Validate",
				CompleteSignature: "func([]byte) error",
				Fields: []*Field{
					{Name: "Entity", Type: PointerTo(entity), Embedded: true},
					{Name: "Name", Tag: `epoxy:"name"`, Type: Basic("string")},
					{Name: "Temp", Tag: `epoxy:",optional"`, Type: celsius},
					{Name: "Limit", Tag: `epoxy:"limit,optional"`, Type: PointerTo(celsius)},
					{Name: "Count", Tag: `epoxy:"count" nullable:"true"`, Type: PointerTo(Basic("int"))},
					{Name: "Tags", Tag: `epoxy:"tags"`, Type: SliceOf(Basic("string"))},
					{Name: "Grid", Tag: `epoxy:"grid"`, Type: SliceOf(SliceOf(Basic("int")))},
					{Name: "Items", Tag: `epoxy:"items"`, Type: SliceOf(PointerTo(item))},
					{Name: "Lines", Tag: `epoxy:"lines"`, Type: MapOf(Basic("string"), item)},
					{Name: "Color", Tag: `epoxy:"color"`, Type: color},
					{Name: "Due", Tag: `epoxy:"due"`, Type: timeType},
					{Name: "Secret", Tag: `epoxy:"-"`, Type: Basic("string")},
					{Name: "internal", Type: Basic("string")},
				},
			},
			{
				Name: "Item",
				Fields: []*Field{
					{Name: "Name", Tag: `epoxy:"name"`, Type: Basic("string")},
					{Name: "Colors", Tag: `epoxy:"colors"`, Type: SliceOf(color)},
				},
			},
			{
				Name: "Audit",
				Fields: []*Field{
					{Name: "Entity", Type: entity, Embedded: true},
				},
			},
			{
				Name: "Refund",
				Fields: []*Field{
					{Name: "Audit", Type: Named(testPkg, "shop", "Audit", structType), Embedded: true},
					{Name: "Reason", Tag: `epoxy:"reason"`, Type: Basic("string")},
				},
			},
			{
				Name: "Plain",
				Fields: []*Field{
					{Name: "Value", Type: Basic("string")},
				},
			},
		},
	}
}

func filesByName(result *Result) map[string]string {
	ret := map[string]string{}
	for _, file := range result.Files {
		ret[file.Name] = string(file.Content)
	}
	return ret
}

func TestGenerator_Generate(t *testing.T) {
	generator := New(DefaultConfig(), testLogger())
	result := generator.Generate(shopSource())
	require.Empty(t, result.Diagnostics)

	var names []string
	for _, binding := range result.Bindings {
		names = append(names, binding.TypeName)
	}
	assert.Equal(t, []string{"Entity", "Item", "Order", "Refund"}, names)

	files := filesByName(result)
	var fileNames []string
	for _, file := range result.Files {
		fileNames = append(fileNames, file.Name)
	}
	assert.Equal(t, []string{"entity_epoxy.go", "item_epoxy.go", "order_epoxy.go", "refund_epoxy.go", "enums_epoxy.go"}, fileNames)

	var testCases = []struct {
		description string
		file        string
		contains    []string
		matches     []string
		excludes    []string
	}{
		{
			description: "header and registration",
			file:        "order_epoxy.go",
			contains: []string{
				"// Code generated by epoxygen. DO NOT EDIT.",
				"package shop",
				`"github.com/viant/epoxy/jsonio"`,
				`"time"`,
				"type OrderJSONBinder struct {",
				"func NewOrderJSONBinder(registry *epoxy.Registry) *OrderJSONBinder {",
				"epoxy.Register(reflect.TypeOf((*Order)(nil)).Elem(), func(registry *epoxy.Registry) epoxy.Converter {",
				"func (b *OrderJSONBinder) FromJSON(r *jsonio.Reader) (*Order, error) {",
				"func (b *OrderJSONBinder) ParseJSON(model *Order, object *jsonio.Object) error {",
				"func (b *OrderJSONBinder) ToJSON(w *jsonio.Writer, model *Order) error {",
				"func (b *OrderJSONBinder) ParseModel(w *jsonio.Writer, model *Order) error {",
			},
		},
		{
			description: "pointer parent",
			file:        "order_epoxy.go",
			contains: []string{
				"if model.Entity == nil {",
				"model.Entity = &Entity{}",
				"if err := b.parent.ParseJSON(model.Entity, object); err != nil {",
				"if model.Entity != nil {",
				"if err := b.parent.ParseModel(w, model.Entity); err != nil {",
			},
			matches: []string{`parent:\s+NewEntityJSONBinder\(registry\),`, `parent\s+\*EntityJSONBinder`},
		},
		{
			description: "scalar fields",
			file:        "order_epoxy.go",
			contains: []string{
				`value, err := epoxy.ParseString(object, "name", false)`,
				`epoxy.PutString(w, "name", model.Name)`,
				`value, err := epoxy.ParseFloat64(object, "Temp", true)`,
				"model.Temp = Celsius(value)",
				`epoxy.PutFloat64(w, "Temp", float64(model.Temp))`,
				`value, err := epoxy.ParseFloat64Ptr(object, "limit", true)`,
				"model.Limit = (*Celsius)(value)",
				`epoxy.PutFloat64Ptr(w, "limit", (*float64)(model.Limit), true)`,
				`value, err := epoxy.ParseIntPtr(object, "count", true)`,
				`epoxy.PutIntPtr(w, "count", model.Count, true)`,
				`value, err := epoxy.ParseStringSlice(object, "tags", false)`,
				`epoxy.PutStringSlice(w, "tags", model.Tags, false)`,
			},
		},
		{
			description: "delegated fields",
			file:        "order_epoxy.go",
			contains: []string{
				`value, err := epoxy.ParseValue[[][]int](b.registry, object, "grid", false, b.typeSliceOfSliceOfInt)`,
				`value, err := epoxy.ParseValue[[]*Item](b.registry, object, "items", false, b.typeSliceOfPtrItem)`,
				`value, err := epoxy.ParseValue[map[string]Item](b.registry, object, "lines", false, b.typeMapOfStringToItem)`,
				`value, err := epoxy.ParseValue[Color](b.registry, object, "color", false, b.typeColor)`,
				`value, err := epoxy.ParseValue[time.Time](b.registry, object, "due", false, b.typeTimeTime)`,
				`if err := epoxy.PutValue(b.registry, w, "due", model.Due, false, b.typeTimeTime); err != nil {`,
			},
			matches: []string{`typeTimeTime:\s+reflect.TypeOf\(\(\*time.Time\)\(nil\)\).Elem\(\),`},
			excludes: []string{"Secret", "internal"},
		},
		{
			description: "complete callback",
			file:        "order_epoxy.go",
			contains:    []string{"if err := model.Validate(object.Raw()); err != nil {"},
		},
		{
			description: "parent through unbound embedded type",
			file:        "refund_epoxy.go",
			contains: []string{
				"if err := b.parent.ParseJSON(&model.Audit.Entity, object); err != nil {",
				"if err := b.parent.ParseModel(w, &model.Audit.Entity); err != nil {",
				`value, err := epoxy.ParseString(object, "reason", false)`,
			},
			excludes: []string{"if model.Audit"},
		},
		{
			description: "root binder has no parent",
			file:        "entity_epoxy.go",
			contains:    []string{`value, err := epoxy.ParseInt(object, "id", false)`, `epoxy.PutInt(w, "id", model.ID)`},
			excludes:    []string{"parent"},
		},
		{
			description: "enum registrations",
			file:        "enums_epoxy.go",
			contains: []string{
				"epoxy.RegisterEnum(reflect.TypeOf((*Color)(nil)).Elem(),",
				`epoxy.EnumConstant{Name: "RED", Value: Red},`,
				`epoxy.EnumConstant{Name: "GREEN", Value: Green},`,
			},
			excludes: []string{"jsonio"},
		},
	}
	for _, testCase := range testCases {
		content, ok := files[testCase.file]
		if !assert.True(t, ok, testCase.description) {
			continue
		}
		for _, fragment := range testCase.contains {
			assert.Contains(t, content, fragment, testCase.description)
		}
		for _, pattern := range testCase.matches {
			assert.Regexp(t, pattern, content, testCase.description)
		}
		for _, fragment := range testCase.excludes {
			assert.NotContains(t, content, fragment, testCase.description)
		}
	}
	assert.Len(t, regexp.MustCompile(`typeTimeTime\s+reflect\.Type`).FindAllString(files["order_epoxy.go"], -1), 1)
}

func TestGenerator_ParentLinking(t *testing.T) {
	result := New(nil, testLogger()).Generate(shopSource())
	bindings := map[string]*HostBinding{}
	for _, binding := range result.Bindings {
		bindings[binding.TypeName] = binding
	}
	assert.Same(t, bindings["Entity"], bindings["Order"].Parent)
	assert.Equal(t, []EmbedStep{{Field: "Entity", Pointer: true, Type: "Entity"}}, bindings["Order"].ParentPath)
	assert.Equal(t, []EmbedStep{{Field: "Audit", Type: "Audit"}, {Field: "Entity", Type: "Entity"}}, bindings["Refund"].ParentPath)
	assert.Equal(t, []*HostBinding{bindings["Entity"]}, bindings["Refund"].Ancestors())
	assert.Nil(t, bindings["Item"].Parent)
}

func TestGenerator_Diagnostics(t *testing.T) {
	var testCases = []struct {
		description string
		host        *HostType
		expect      []string
	}{
		{
			description: "duplicate key",
			host: &HostType{Name: "Dup", Fields: []*Field{
				{Name: "A", Tag: `epoxy:"x"`, Type: Basic("int")},
				{Name: "B", Tag: `epoxy:"x"`, Type: Basic("int")},
			}},
			expect: []string{`Dup.B: JSON key "x" is already bound to A`},
		},
		{
			description: "unsupported field types are all reported",
			host: &HostType{Name: "Bad", Fields: []*Field{
				{Name: "A", Tag: `epoxy:"a"`, Type: Basic("byte")},
				{Name: "B", Tag: `epoxy:"b"`, Type: MapOf(Basic("int"), Basic("int"))},
				{Name: "C", Tag: `epoxy:"c"`, Type: Basic("int")},
			}},
			expect: []string{
				"Bad.A: byte type byte must be a valid JSON type",
				"Bad.B: map key of map[int]int must be a string",
			},
		},
		{
			description: "complete signature",
			host: &HostType{Name: "Hook", Complete: "Done", Fields: []*Field{
				{Name: "A", Tag: `epoxy:"a"`, Type: Basic("int")},
			}},
			expect: []string{`Hook: complete method Done must have signature func([]byte) error, but had ""`},
		},
		{
			description: "blank field",
			host: &HostType{Name: "Blank", Fields: []*Field{
				{Name: "_", Tag: `epoxy:"a"`, Type: Basic("int")},
			}},
			expect: []string{"Blank._: blank field can not be bound"},
		},
		{
			description: "optional option not boolean",
			host: &HostType{Name: "Flag", Fields: []*Field{
				{Name: "A", Tag: `epoxy:"a,optional=maybe"`, Type: Basic("int")},
				{Name: "B", Tag: `epoxy:"b" nullable:"perhaps"`, Type: Basic("int")},
			}},
			expect: []string{
				`Flag.A: option optional must be a boolean, but had "maybe"`,
				`Flag.B: tag nullable must be a boolean, but had "perhaps"`,
			},
		},
		{
			description: "alias",
			host:        &HostType{Name: "Alias", Alias: true, Fields: []*Field{{Name: "A", Tag: `epoxy:"a"`, Type: Basic("int")}}},
			expect:      []string{"Alias: type alias can not be bound"},
		},
		{
			description: "generic",
			host:        &HostType{Name: "Box", TypeParams: 1, Fields: []*Field{{Name: "A", Tag: `epoxy:"a"`, Type: Basic("int")}}},
			expect:      []string{"Box: generic type can not be bound"},
		},
	}
	for _, testCase := range testCases {
		source := &Source{PkgName: "shop", PkgPath: testPkg, Types: []*HostType{testCase.host}}
		result := New(nil, testLogger()).Generate(source)
		var actual []string
		for _, diagnostic := range result.Diagnostics {
			actual = append(actual, diagnostic.Error())
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
		assert.Empty(t, result.Files, testCase.description)
		assert.True(t, result.HasErrors(), testCase.description)
	}
}

func TestGenerator_ParentChain(t *testing.T) {
	structType := &TypeRef{Kind: KindStruct}
	named := func(name string) *TypeRef { return Named(testPkg, "shop", name, structType) }
	base := &HostType{Name: "Base", Fields: []*Field{{Name: "ID", Tag: `epoxy:"id"`, Type: Basic("int")}}}
	var testCases = []struct {
		description string
		hosts       []*HostType
		expect      []string
		bindings    []string
	}{
		{
			description: "failed intermediate ancestor",
			hosts: []*HostType{
				base,
				{Name: "Middle", Fields: []*Field{
					{Name: "Base", Type: named("Base"), Embedded: true},
					{Name: "Data", Tag: `epoxy:"data"`, Type: Basic("byte")},
				}},
				{Name: "Leaf", Fields: []*Field{
					{Name: "Middle", Type: named("Middle"), Embedded: true},
					{Name: "Name", Tag: `epoxy:"name"`, Type: Basic("string")},
				}},
				{Name: "Tip", Fields: []*Field{
					{Name: "Leaf", Type: PointerTo(named("Leaf")), Embedded: true},
					{Name: "Note", Tag: `epoxy:"note"`, Type: Basic("string")},
				}},
			},
			expect: []string{
				"Middle.Data: byte type byte must be a valid JSON type",
				"Leaf: embedded Middle failed to bind",
				"Tip: embedded Leaf failed to bind",
			},
			bindings: []string{"Base"},
		},
		{
			description: "inherited key rebound",
			hosts: []*HostType{
				base,
				{Name: "Child", Fields: []*Field{
					{Name: "Base", Type: named("Base"), Embedded: true},
					{Name: "Other", Tag: `epoxy:"id"`, Type: Basic("int")},
				}},
				{Name: "Sibling", Fields: []*Field{
					{Name: "Base", Type: PointerTo(named("Base")), Embedded: true},
					{Name: "Own", Tag: `epoxy:"own"`, Type: Basic("int")},
				}},
			},
			expect:   []string{`Child.Other: JSON key "id" is already bound to Base.ID`},
			bindings: []string{"Base", "Sibling"},
		},
		{
			description: "pointer embedding cycle",
			hosts: []*HostType{
				{Name: "Ping", Fields: []*Field{
					{Name: "Pong", Type: PointerTo(named("Pong")), Embedded: true},
					{Name: "A", Tag: `epoxy:"a"`, Type: Basic("int")},
				}},
				{Name: "Pong", Fields: []*Field{
					{Name: "Ping", Type: PointerTo(named("Ping")), Embedded: true},
					{Name: "B", Tag: `epoxy:"b"`, Type: Basic("int")},
				}},
			},
			expect: []string{
				"Ping: embedded types form a cycle",
				"Pong: embedded types form a cycle",
			},
		},
	}
	for _, testCase := range testCases {
		source := &Source{PkgName: "shop", PkgPath: testPkg, Types: testCase.hosts}
		result := New(nil, testLogger()).Generate(source)
		var actual []string
		for _, diagnostic := range result.Diagnostics {
			actual = append(actual, diagnostic.Error())
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
		var bindings []string
		for _, binding := range result.Bindings {
			bindings = append(bindings, binding.TypeName)
		}
		assert.Equal(t, testCase.bindings, bindings, testCase.description)
		assert.Len(t, result.Files, len(testCase.bindings), testCase.description)
	}
}

func TestGenerator_EnumOwnership(t *testing.T) {
	mode := Named("example.com/other", "other", "Mode", Basic("string"))
	mode.Enum = []EnumConstant{{Ident: "Fast", Name: "FAST"}, {Ident: "slow", Name: "SLOW"}}
	size := Named(testPkg, "shop", "Size", Basic("int"))
	size.Enum = []EnumConstant{{Ident: "Small", Name: "Small"}}
	host := func(fields ...*Field) *Source {
		return &Source{PkgName: "shop", PkgPath: testPkg, Types: []*HostType{{Name: "Pick", Fields: fields}}}
	}

	result := New(nil, testLogger()).Generate(host(&Field{Name: "Mode", Tag: `epoxy:"mode"`, Type: mode}))
	require.Empty(t, result.Diagnostics)
	files := filesByName(result)
	assert.Contains(t, files, "pick_epoxy.go")
	assert.NotContains(t, files, "enums_epoxy.go")
	assert.Contains(t, files["pick_epoxy.go"], `"example.com/other"`)

	result = New(nil, testLogger()).Generate(host(
		&Field{Name: "Mode", Tag: `epoxy:"mode"`, Type: SliceOf(mode)},
		&Field{Name: "Size", Tag: `epoxy:"size"`, Type: PointerTo(size)},
	))
	require.Empty(t, result.Diagnostics)
	enums := filesByName(result)["enums_epoxy.go"]
	assert.Contains(t, enums, "epoxy.RegisterEnum(reflect.TypeOf((*Size)(nil)).Elem(),")
	assert.Contains(t, enums, `epoxy.EnumConstant{Name: "Small", Value: Small},`)
	assert.NotContains(t, enums, "other")
}

func TestGenerator_Config(t *testing.T) {
	config := &Config{CaseFormat: "lowerUnderscore", Suffix: "Codec", FileSuffix: "_codec.go", Types: []string{"Order", "Entity"}, Workers: 3}
	config.Init()
	require.NoError(t, config.Validate())
	result := New(config, testLogger()).Generate(shopSource())
	require.Empty(t, result.Diagnostics)
	files := filesByName(result)
	assert.NotContains(t, files, "item_codec.go")
	assert.Contains(t, files, "enums_codec.go")
	order := files["order_codec.go"]
	assert.Contains(t, order, "type OrderCodec struct {")
	assert.Contains(t, order, `epoxy.ParseFloat64(object, "temp", true)`)
	assert.Regexp(t, `parent:\s+NewEntityCodec\(registry\),`, order)
}

type failingWriter struct {
	written map[string][]byte
	fail    string
}

func (w *failingWriter) WriteFile(name string, data []byte) error {
	if name == w.fail {
		return errors.New("disk full")
	}
	w.written[name] = data
	return nil
}

func TestGenerator_Write(t *testing.T) {
	generator := New(nil, testLogger())
	result := generator.Generate(shopSource())
	writer := &failingWriter{written: map[string][]byte{}, fail: "item_epoxy.go"}
	diagnostics := generator.Write(result, writer)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "item_epoxy.go: disk full", diagnostics[0].Error())
	assert.Len(t, writer.written, len(result.Files)-1)
	assert.Contains(t, writer.written, "refund_epoxy.go")
	assert.Contains(t, writer.written, "enums_epoxy.go")
}
