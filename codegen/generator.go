package codegen

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/viant/epoxy/codegen/internal/tagutil"
	"github.com/viant/tagly/format/text"
)

// File is a generated source file.
type File struct {
	Name    string
	Content []byte
}

// Result is the outcome of one generation pass.
type Result struct {
	Bindings    []*HostBinding
	Files       []*File
	Diagnostics []*Diagnostic
}

// HasErrors reports whether any binding failed.
func (r *Result) HasErrors() bool { return len(r.Diagnostics) > 0 }

// FileWriter persists generated files.
type FileWriter interface {
	WriteFile(name string, data []byte) error
}

// DirWriter writes files into a directory.
type DirWriter string

// WriteFile writes data to name within the directory.
func (d DirWriter) WriteFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(string(d), name), data, 0o644)
}

// Generator produces binders for the annotated host types of a package.
type Generator struct {
	config *Config
	logger *slog.Logger
}

// New creates a generator.
func New(config *Config, logger *slog.Logger) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{config: config, logger: logger}
}

// Generate runs one pass over source: bindings are built for every annotated host type,
// linked to their parents, then emitted. A failing binding is reported and skipped.
func (g *Generator) Generate(source *Source) *Result {
	result := &Result{}
	table := map[string]*HostBinding{}
	failed := map[string]bool{}
	for _, host := range source.Types {
		if !g.config.selected(host.Name) || !g.isAnnotated(host) {
			continue
		}
		binding, diagnostics := g.bind(source, host)
		if len(diagnostics) > 0 {
			result.Diagnostics = append(result.Diagnostics, diagnostics...)
			failed[host.Name] = true
			continue
		}
		table[host.Name] = binding
		result.Bindings = append(result.Bindings, binding)
	}
	g.linkParents(source, result, table, failed)
	sort.Slice(result.Bindings, func(i, j int) bool { return result.Bindings[i].TypeName < result.Bindings[j].TypeName })

	files := make([]*File, len(result.Bindings))
	errs := make([]error, len(result.Bindings))
	var wg sync.WaitGroup
	limiter := make(chan struct{}, g.config.Workers)
	for i, binding := range result.Bindings {
		wg.Add(1)
		limiter <- struct{}{}
		go func(i int, binding *HostBinding) {
			defer func() {
				<-limiter
				wg.Done()
			}()
			files[i], errs[i] = g.emitBinding(source, binding)
		}(i, binding)
	}
	wg.Wait()
	for i, file := range files {
		if errs[i] != nil {
			result.Diagnostics = append(result.Diagnostics, &Diagnostic{Host: result.Bindings[i].TypeName, Message: errs[i].Error()})
			continue
		}
		result.Files = append(result.Files, file)
	}
	if enumFile, err := g.emitEnums(source, result.Bindings); err != nil {
		result.Diagnostics = append(result.Diagnostics, &Diagnostic{Host: source.PkgName, Message: err.Error()})
	} else if enumFile != nil {
		result.Files = append(result.Files, enumFile)
	}
	return result
}

// Write persists result files; a failing file is reported and the remaining files are still written.
func (g *Generator) Write(result *Result, writer FileWriter) []*Diagnostic {
	var ret []*Diagnostic
	for _, file := range result.Files {
		if err := writer.WriteFile(file.Name, file.Content); err != nil {
			g.logger.Error("failed to write binding", "file", file.Name, "error", err)
			ret = append(ret, &Diagnostic{Host: file.Name, Message: err.Error()})
			continue
		}
		g.logger.Info("generated binding", "file", file.Name, "bytes", len(file.Content))
	}
	return ret
}

func (g *Generator) isAnnotated(host *HostType) bool {
	for _, field := range host.Fields {
		if _, ok := field.Tag.Lookup(g.config.Tag); ok {
			return true
		}
	}
	return false
}

func (g *Generator) bind(source *Source, host *HostType) (*HostBinding, []*Diagnostic) {
	var diagnostics []*Diagnostic
	report := func(field, format string, args ...interface{}) {
		diagnostics = append(diagnostics, &Diagnostic{Host: host.Name, Field: field, Message: fmt.Sprintf(format, args...)})
	}
	if host.Alias {
		report("", "type alias can not be bound")
		return nil, diagnostics
	}
	if host.TypeParams > 0 {
		report("", "generic type can not be bound")
		return nil, diagnostics
	}
	ret := &HostBinding{PkgName: source.PkgName, PkgPath: source.PkgPath, TypeName: host.Name, host: host}
	keys := map[string]string{}
	for _, field := range host.Fields {
		encoded, ok := field.Tag.Lookup(g.config.Tag)
		if !ok {
			continue
		}
		tag, err := tagutil.Parse(encoded)
		if err != nil {
			report(field.Name, "%v", err)
			continue
		}
		if tag.Ignore {
			continue
		}
		if field.Name == "_" {
			report(field.Name, "blank field can not be bound")
			continue
		}
		classification, err := Classify(field.Type)
		if err != nil {
			report(field.Name, "%v", err)
			continue
		}
		key := tag.Name
		if key == "" {
			key = g.config.jsonKey(field.Name)
		}
		if previous, ok := keys[key]; ok {
			report(field.Name, "JSON key %q is already bound to %v", key, previous)
			continue
		}
		optional, err := g.isOptional(tag, field)
		if err != nil {
			report(field.Name, "%v", err)
			continue
		}
		keys[key] = field.Name
		ret.Fields = append(ret.Fields, &FieldBinding{
			FieldName:      field.Name,
			JSONKey:        key,
			Optional:       optional,
			Type:           field.Type,
			Classification: classification,
		})
	}
	if host.Complete != "" {
		if expect := "func([]byte) error"; host.CompleteSignature != expect {
			report("", "complete method %v must have signature %v, but had %q", host.Complete, expect, host.CompleteSignature)
		}
		ret.Complete = host.Complete
	}
	return ret, diagnostics
}

func (g *Generator) isOptional(tag *tagutil.Tag, field *Field) (bool, error) {
	for _, marker := range g.config.OptionalMarkers {
		enabled, err := tag.Has(marker)
		if err != nil || enabled {
			return enabled, err
		}
		if value, ok := field.Tag.Lookup(marker); ok {
			if enabled, err = strconv.ParseBool(value); err != nil {
				return false, fmt.Errorf("tag %v must be a boolean, but had %q", marker, value)
			}
			if enabled {
				return true, nil
			}
		}
	}
	return false, nil
}

// linkParents links every binding to its parent until the set of bindings is stable:
// a binding whose ancestor failed, or that rebinds an inherited JSON key, fails too.
func (g *Generator) linkParents(source *Source, result *Result, table map[string]*HostBinding, failed map[string]bool) {
	drop := func(binding *HostBinding, diagnostic *Diagnostic) {
		result.Diagnostics = append(result.Diagnostics, diagnostic)
		failed[binding.TypeName] = true
		delete(table, binding.TypeName)
	}
	for changed := true; changed; {
		changed = false
		var kept []*HostBinding
		for _, binding := range result.Bindings {
			if ancestor := g.linkParent(source, binding, table, failed); ancestor != "" {
				drop(binding, &Diagnostic{Host: binding.TypeName, Message: fmt.Sprintf("embedded %v failed to bind", ancestor)})
				changed = true
				continue
			}
			kept = append(kept, binding)
		}
		result.Bindings = kept
		if changed {
			continue
		}
		kept = nil
		for _, binding := range result.Bindings {
			if diagnostic := inheritedKey(binding); diagnostic != nil {
				drop(binding, diagnostic)
				changed = true
				continue
			}
			kept = append(kept, binding)
		}
		result.Bindings = kept
	}
}

// linkParent walks the embedding chain to the nearest ancestor with a binding in table,
// it returns the name of a failed ancestor met first.
func (g *Generator) linkParent(source *Source, binding *HostBinding, table map[string]*HostBinding, failed map[string]bool) string {
	binding.Parent, binding.ParentPath = nil, nil
	visited := map[string]bool{binding.TypeName: true}
	var path []EmbedStep
	current := binding.host
	for current != nil {
		step, ok := embeddedStruct(source, current)
		if !ok || visited[step.Type] {
			return ""
		}
		visited[step.Type] = true
		path = append(path, step)
		if failed[step.Type] {
			return step.Type
		}
		if parent, ok := table[step.Type]; ok {
			binding.Parent = parent
			binding.ParentPath = path
			return ""
		}
		current = source.Lookup(step.Type)
	}
	return ""
}

// inheritedKey reports a parent cycle or a field bound to a JSON key of an ancestor.
func inheritedKey(binding *HostBinding) *Diagnostic {
	if binding.cyclic() {
		return &Diagnostic{Host: binding.TypeName, Message: "embedded types form a cycle"}
	}
	owners := map[string]string{}
	for _, ancestor := range binding.Ancestors() {
		for _, field := range ancestor.Fields {
			if _, ok := owners[field.JSONKey]; !ok {
				owners[field.JSONKey] = ancestor.TypeName + "." + field.FieldName
			}
		}
	}
	for _, field := range binding.Fields {
		if owner, ok := owners[field.JSONKey]; ok {
			return &Diagnostic{Host: binding.TypeName, Field: field.FieldName, Message: fmt.Sprintf("JSON key %q is already bound to %v", field.JSONKey, owner)}
		}
	}
	return nil
}

// embeddedStruct returns the first embedded field of a same package named type.
func embeddedStruct(source *Source, host *HostType) (EmbedStep, bool) {
	for _, field := range host.Fields {
		if !field.Embedded {
			continue
		}
		fieldType, pointer := field.Type, false
		if fieldType.Kind == KindPointer {
			fieldType, pointer = fieldType.Elem, true
		}
		if fieldType == nil || fieldType.Kind != KindNamed || fieldType.PkgPath != source.PkgPath {
			continue
		}
		if source.Lookup(fieldType.Name) == nil {
			continue
		}
		return EmbedStep{Field: field.Name, Pointer: pointer, Type: fieldType.Name}, true
	}
	return EmbedStep{}, false
}

func (g *Generator) fileName(typeName string) string {
	snake := text.DetectCaseFormat(typeName).Format(typeName, text.CaseFormatLowerUnderscore)
	return snake + g.config.FileSuffix
}
