package config

import (
	"errors"
	"fmt"
)

// Options reads one rule's option table, remembering the first error so
// that a constructor can read every option and check once.
//
//	opts := cfg.Options("MD013")
//	limit := opts.Int("line_length", 80)
//	if err := opts.Err(); err != nil {
//		return nil, err
//	}
type Options struct {
	rc      RuleConfig
	section string
	path    string
	err     error
}

// Options returns a reader over the option table of rule id. It is safe
// to call on a nil Config; every option then takes its default.
func (c *Config) Options(id string) *Options {
	opts := &Options{rc: c.RuleConfig(id), section: NormalizeRuleID(id)}
	if c != nil {
		opts.path = c.Path
	}
	return opts
}

// Section returns the rule ID the options belong to.
func (o *Options) Section() string {
	return o.section
}

// Has reports whether key is set.
func (o *Options) Has(key string) bool {
	return o.rc.Has(key)
}

// Int returns an integer option, or def when absent or after an error.
func (o *Options) Int(key string, def int) int {
	v, err := o.rc.Int(key, def)
	return keep(o, v, def, err)
}

// PositiveInt is Int restricted to values above zero.
func (o *Options) PositiveInt(key string, def int) int {
	v := o.Int(key, def)
	if v <= 0 && o.err == nil {
		o.fail(&Error{Key: NormalizeKey(key), Err: fmt.Errorf("%w: must be positive, got %d", ErrInvalidValue, v)})
		return def
	}
	return v
}

// Bool returns a boolean option, or def when absent or after an error.
func (o *Options) Bool(key string, def bool) bool {
	v, err := o.rc.Bool(key, def)
	return keep(o, v, def, err)
}

// String returns a string option, or def when absent or after an error.
func (o *Options) String(key, def string) string {
	v, err := o.rc.String(key, def)
	return keep(o, v, def, err)
}

// OneOf is String restricted to the allowed values.
func (o *Options) OneOf(key, def string, allowed ...string) string {
	v := o.String(key, def)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	if o.err == nil {
		o.fail(&Error{Key: NormalizeKey(key), Err: fmt.Errorf("%w: %q is not one of %v", ErrInvalidValue, v, allowed)})
	}
	return def
}

// StringSlice returns a list option, or def when absent or after an error.
func (o *Options) StringSlice(key string, def []string) []string {
	v, err := o.rc.StringSlice(key, def)
	return keep(o, v, def, err)
}

// Reject records that key holds an unusable value, for checks a rule
// makes itself such as compiling a pattern.
func (o *Options) Reject(key string, err error) {
	o.fail(&Error{Key: NormalizeKey(key), Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)})
}

// Err returns the first error met, located at the rule's section.
func (o *Options) Err() error {
	return o.err
}

func keep[T any](o *Options, v, def T, err error) T {
	if err != nil {
		o.fail(err)
		return def
	}
	return v
}

func (o *Options) fail(err error) {
	if o.err != nil {
		return
	}

	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		if cfgErr.Section == "" {
			cfgErr.Section = o.section
		}
		if cfgErr.Path == "" {
			cfgErr.Path = o.path
		}
	}
	o.err = err
}
