package wavhdr

import (
	"errors"
	"fmt"
)

// FactPolicy decides when a missing fact chunk is an error.
type FactPolicy int

const (
	// FactRequiredNonPCM requires a fact chunk unless the effective codec is PCM.
	FactRequiredNonPCM FactPolicy = iota
	// FactOptional never requires a fact chunk.
	FactOptional
	// FactRequired always requires a fact chunk.
	FactRequired
)

// Layout decides how the fmt and fact chunks are located.
type Layout int

const (
	// LayoutWalk locates chunks by tag, in any order.
	LayoutWalk Layout = iota
	// LayoutFixed requires the fmt chunk at byte 12 and, when a fact chunk is
	// required, the fact chunk right after it.
	LayoutFixed
)

var (
	errUnknownFactPolicy = errors.New("unknown fact policy")
	errUnknownLayout     = errors.New("unknown layout")
)

var factPolicyNames = map[FactPolicy]string{
	FactRequiredNonPCM: "nonpcm",
	FactOptional:       "optional",
	FactRequired:       "required",
}

var layoutNames = map[Layout]string{
	LayoutWalk:  "walk",
	LayoutFixed: "fixed",
}

func (p FactPolicy) String() string {
	if name, ok := factPolicyNames[p]; ok {
		return name
	}

	return fmt.Sprintf("FactPolicy(%d)", int(p))
}

// ParseFactPolicy parses the String form of a FactPolicy.
func ParseFactPolicy(s string) (FactPolicy, error) {
	for p, name := range factPolicyNames {
		if name == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errUnknownFactPolicy, s)
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}

	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout parses the String form of a Layout.
func ParseLayout(s string) (Layout, error) {
	for l, name := range layoutNames {
		if name == s {
			return l, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errUnknownLayout, s)
}

// Options configures Parse and Decoder.
type Options struct {
	FactPolicy FactPolicy
	Layout     Layout
	Registry   *ChunkRegistry
}

// Option mutates Options.
type Option func(*Options)

// WithFactPolicy sets the fact chunk policy.
func WithFactPolicy(p FactPolicy) Option {
	return func(o *Options) {
		o.FactPolicy = p
	}
}

// WithLayout sets the chunk layout mode.
func WithLayout(l Layout) Option {
	return func(o *Options) {
		o.Layout = l
	}
}

// WithRegistry replaces the default chunk registry.
func WithRegistry(r *ChunkRegistry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

func newOptions(opts []Option) Options {
	o := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.Registry == nil {
		o.Registry = NewChunkRegistry()
	}

	return o
}
