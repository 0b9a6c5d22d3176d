package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdbooklint/pkg/config"
	"github.com/yaklabco/mdbooklint/pkg/document"
)

// ErrorKind classifies errors surfaced by the engine and its collaborators.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindDocument
	KindRule
	KindPlugin
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindRule:
		return "rule"
	case KindPlugin:
		return "plugin"
	case KindConfig:
		return "config"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// KindOf reports which error kind err carries, searching its wrap chain.
func KindOf(err error) ErrorKind {
	var (
		pluginErr *PluginError
		ruleErr   *RuleError
		cfgErr    *config.Error
		docErr    *document.Error
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &pluginErr):
		return KindPlugin
	case errors.As(err, &ruleErr):
		return KindRule
	case errors.As(err, &cfgErr):
		return KindConfig
	case errors.As(err, &docErr):
		return KindDocument
	default:
		return KindUnknown
	}
}

// RuleError reports a rule that failed while checking a document or collection.
type RuleError struct {
	RuleID string

	// Path is the document being checked. Empty for collection rules.
	Path string

	Err error
}

func (e *RuleError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
	}
	return fmt.Sprintf("rule %s on %s: %v", e.RuleID, e.Path, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Registry-level failures, matched with errors.Is against a *PluginError.
var (
	ErrDuplicateProvider = errors.New("duplicate provider")
	ErrDuplicateRule     = errors.New("duplicate rule")
	ErrProviderMismatch  = errors.New("provider rule list mismatch")
)

// PluginErrorKind distinguishes registry failures.
type PluginErrorKind uint8

const (
	DuplicateProvider PluginErrorKind = iota
	DuplicateRule
	ProviderMismatch
)

// PluginError reports a packaging problem: colliding provider or rule IDs,
// or a provider whose registered rules differ from what it advertises.
type PluginError struct {
	Kind       PluginErrorKind
	ProviderID string
	RuleID     string
	Detail     string
}

func (e *PluginError) Error() string {
	msg := e.sentinel().Error()
	if e.ProviderID != "" {
		msg += " in provider " + e.ProviderID
	}
	if e.RuleID != "" {
		msg += ": " + e.RuleID
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *PluginError) Unwrap() error {
	return e.sentinel()
}

func (e *PluginError) sentinel() error {
	switch e.Kind {
	case DuplicateProvider:
		return ErrDuplicateProvider
	case DuplicateRule:
		return ErrDuplicateRule
	case ProviderMismatch:
		return ErrProviderMismatch
	default:
		return ErrProviderMismatch
	}
}
