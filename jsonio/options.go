package jsonio

// DuplicateKeyPolicy controls repeated member names when an object is read as a whole.
type DuplicateKeyPolicy int

const (
	// LastWins keeps the last occurrence of a repeated member.
	LastWins DuplicateKeyPolicy = iota
	// ErrorOnDuplicate rejects an object with a repeated member.
	ErrorOnDuplicate
)

// MalformedPolicy controls tolerance for separator mistakes.
type MalformedPolicy int

const (
	// FailFast rejects any structural error.
	FailFast MalformedPolicy = iota
	// Tolerant accepts trailing commas before a closing bracket.
	Tolerant
)

// Options configures readers and writers.
type Options struct {
	Hooks              ScannerHooks
	DuplicateKeyPolicy DuplicateKeyPolicy
	MalformedPolicy    MalformedPolicy
	Indent             string
}

// Option mutates Options.
type Option interface {
	apply(*Options)
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithScannerHooks sets custom scanner hooks.
func WithScannerHooks(hooks ScannerHooks) Option {
	return optionFn(func(o *Options) {
		if hooks != nil {
			o.Hooks = hooks
		}
	})
}

// WithDuplicateKeyPolicy sets the repeated member policy used by Reader.ReadObject.
func WithDuplicateKeyPolicy(policy DuplicateKeyPolicy) Option {
	return optionFn(func(o *Options) { o.DuplicateKeyPolicy = policy })
}

// WithMalformedPolicy sets separator tolerance.
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return optionFn(func(o *Options) { o.MalformedPolicy = policy })
}

// WithIndent enables pretty printing, each nesting level is prefixed with indent.
func WithIndent(indent string) Option {
	return optionFn(func(o *Options) { o.Indent = indent })
}

func resolveOptions(opts []Option) Options {
	ret := Options{Hooks: scalarScannerHooks{}}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&ret)
		}
	}
	return ret
}
