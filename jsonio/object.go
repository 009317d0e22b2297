package jsonio

// Member is a raw object member.
type Member struct {
	Name  string
	Value []byte
}

// Object is a random access view of a JSON object whose member values stay unparsed.
type Object struct {
	raw     []byte
	members []Member
	index   map[string]int
	options Options
}

// ReadObject consumes the next value as a whole object.
// It returns nil without error when the value is null.
func (r *Reader) ReadObject() (*Object, error) {
	kind, err := r.Peek()
	if err != nil {
		return nil, err
	}
	if kind == KindNull {
		return nil, r.NextNull()
	}
	start := r.pos
	if err = r.BeginObject(); err != nil {
		return nil, err
	}
	ret := &Object{options: r.options, index: map[string]int{}}
	for r.HasNext() {
		offset := r.pos
		name, err := r.NextName()
		if err != nil {
			return nil, err
		}
		value, err := r.RawValue()
		if err != nil {
			return nil, err
		}
		if _, ok := ret.index[name]; ok && r.options.DuplicateKeyPolicy == ErrorOnDuplicate {
			return nil, &DuplicateKeyError{Name: name, Offset: offset}
		}
		ret.index[name] = len(ret.members)
		ret.members = append(ret.members, Member{Name: name, Value: value})
	}
	if err = r.EndObject(); err != nil {
		return nil, err
	}
	ret.raw = r.data[start:r.pos]
	return ret, nil
}

// ParseObject reads data as a single JSON object.
func ParseObject(data []byte, opts ...Option) (*Object, error) {
	reader := NewReader(data, opts...)
	ret, err := reader.ReadObject()
	if err != nil {
		return nil, err
	}
	return ret, reader.End()
}

// Raw returns the object bytes as they appeared in the input.
func (o *Object) Raw() []byte { return o.raw }

// Len returns the number of members including repeated names.
func (o *Object) Len() int { return len(o.members) }

// Members returns members in input order.
func (o *Object) Members() []Member { return o.members }

// Has reports whether name is present.
func (o *Object) Has(name string) bool {
	_, ok := o.index[name]
	return ok
}

// Lookup returns the raw value of name, the last occurrence wins.
func (o *Object) Lookup(name string) ([]byte, bool) {
	idx, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.members[idx].Value, true
}

// IsNull reports whether name is present with a null value.
func (o *Object) IsNull(name string) bool {
	value, ok := o.Lookup(name)
	return ok && len(value) > 0 && value[0] == 'n'
}

// Reader returns a reader positioned at the value of name.
func (o *Object) Reader(name string) (*Reader, bool) {
	value, ok := o.Lookup(name)
	if !ok {
		return nil, false
	}
	return newReader(value, o.options), true
}
