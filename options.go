package epoxy

import "github.com/viant/epoxy/jsonio"

// Options configures Marshal and Unmarshal.
type Options struct {
	Registry *Registry
	IO       []jsonio.Option
}

// Option mutates Options.
type Option interface {
	apply(*Options)
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithRegistry sets the registry used to resolve converters, Default is used otherwise.
func WithRegistry(registry *Registry) Option {
	return optionFn(func(o *Options) {
		if registry != nil {
			o.Registry = registry
		}
	})
}

// WithIndent enables pretty printed output.
func WithIndent(indent string) Option {
	return optionFn(func(o *Options) { o.IO = append(o.IO, jsonio.WithIndent(indent)) })
}

// WithDuplicateKeyPolicy controls repeated members of bound objects.
func WithDuplicateKeyPolicy(policy jsonio.DuplicateKeyPolicy) Option {
	return optionFn(func(o *Options) { o.IO = append(o.IO, jsonio.WithDuplicateKeyPolicy(policy)) })
}

// WithMalformedPolicy controls separator tolerance.
func WithMalformedPolicy(policy jsonio.MalformedPolicy) Option {
	return optionFn(func(o *Options) { o.IO = append(o.IO, jsonio.WithMalformedPolicy(policy)) })
}

// WithScannerHooks sets reader scanner hooks.
func WithScannerHooks(hooks jsonio.ScannerHooks) Option {
	return optionFn(func(o *Options) { o.IO = append(o.IO, jsonio.WithScannerHooks(hooks)) })
}

func resolveOptions(opts []Option) *Options {
	ret := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ret)
		}
	}
	if ret.Registry == nil {
		ret.Registry = Default()
	}
	return ret
}
