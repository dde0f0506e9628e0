package gen

import (
	"errors"
	"maps"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the comment placed at the top of each generated unit.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithIndent sets the indent unit.
func WithIndent(indent string) Option {
	return func(c *Config) error {
		if indent == "" {
			return NewConfigError("Indent", nil, "indent unit cannot be empty")
		}
		c.Indent = indent
		return nil
	}
}

// WithLazyType sets the spelling of the deferred-value container, so
// the same engine can target different runtime libraries.
func WithLazyType(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("LazyType", nil, "lazy container spelling cannot be empty")
		}
		c.LazyType = name
		return nil
	}
}

// WithOptionalType sets the spelling of the optional-value container.
func WithOptionalType(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("OptionalType", nil, "optional container spelling cannot be empty")
		}
		c.OptionalType = name
		return nil
	}
}

// WithBoxed merges entries into the primitive boxing table.
func WithBoxed(boxed map[string]string) Option {
	return func(c *Config) error {
		if c.Boxed == nil {
			c.Boxed = make(map[string]string, len(boxed))
		}
		maps.Copy(c.Boxed, boxed)
		return nil
	}
}

// WithPredicates sets the block-open and block-close line predicates
// driving the indentation-aware emitter.
func WithPredicates(augment, reduce LinePredicate) Option {
	return func(c *Config) error {
		if augment == nil || reduce == nil {
			return NewConfigError("Predicates", nil, "both predicates must be non-nil")
		}
		c.Augment = augment
		c.Reduce = reduce
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a Config from the defaults plus the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
