package codegen

// FieldBinding is the classified binding of one annotated field.
type FieldBinding struct {
	FieldName string
	JSONKey   string
	Optional  bool
	Type      *TypeRef
	*Classification
}

// EmbedStep is one embedded field on the path from a host to its parent binding.
type EmbedStep struct {
	Field   string
	Pointer bool
	Type    string
}

// HostBinding collects the field bindings of a host type.
type HostBinding struct {
	PkgName    string
	PkgPath    string
	TypeName   string
	Fields     []*FieldBinding
	Parent     *HostBinding
	ParentPath []EmbedStep
	Complete   string

	host *HostType
}

// BinderName returns the generated binder type name.
func (h *HostBinding) BinderName(suffix string) string {
	return h.TypeName + suffix
}

// Ancestors returns the parent chain, nearest first, a chain leading back to a visited binding ends there.
func (h *HostBinding) Ancestors() []*HostBinding {
	var ret []*HostBinding
	seen := map[*HostBinding]bool{h: true}
	for parent := h.Parent; parent != nil && !seen[parent]; parent = parent.Parent {
		seen[parent] = true
		ret = append(ret, parent)
	}
	return ret
}

func (h *HostBinding) cyclic() bool {
	ancestors := h.Ancestors()
	if len(ancestors) == 0 {
		return false
	}
	return ancestors[len(ancestors)-1].Parent != nil
}

// Diagnostic reports a binding problem.
type Diagnostic struct {
	Host    string
	Field   string
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Field == "" {
		return d.Host + ": " + d.Message
	}
	return d.Host + "." + d.Field + ": " + d.Message
}
