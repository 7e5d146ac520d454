package schema

import (
	"fmt"
	"regexp"

	"github.com/danmuck/stompframe/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

// Rule constrains one header. Pattern is only tested when the header
// is present.
type Rule struct {
	Name     string
	Required bool
	Pattern  *regexp.Regexp
}

// Shape is a reusable, ordered list of header rules. Rules are checked
// in declaration order; headers without a rule are never inspected.
type Shape struct {
	Rules []Rule
}

// NewShape returns a Shape checking rules in the given order.
func NewShape(rules ...Rule) Shape {
	return Shape{Rules: rules}
}

// Required is shorthand for a presence-only rule.
func Required(name string) Rule {
	return Rule{Name: name, Required: true}
}

// Matching is shorthand for a rule constraining the value of name.
func Matching(name string, required bool, pattern string) Rule {
	return Rule{Name: name, Required: required, Pattern: regexp.MustCompile(pattern)}
}

const (
	ReasonMissing  = "missing required header"
	ReasonMismatch = "pattern mismatch"
)

// ValidationError describes the first violated rule.
type ValidationError struct {
	Command string
	Header  string
	Value   string
	Pattern string
	Reason  string
}

func (e ValidationError) Error() string {
	if e.Header == "" {
		return fmt.Sprintf("schema: command=%s: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("schema: command=%s header=%s: %s", e.Command, e.Header, e.Reason)
}

// Result is the outcome of Validate. Message is empty when Valid.
type Result struct {
	Valid     bool
	Message   string
	Violation *ValidationError
}

// Err returns the violation as an error, or nil when valid.
func (r Result) Err() error {
	if r.Valid || r.Violation == nil {
		return nil
	}
	return *r.Violation
}

// Validate checks fr against shape and reports the first violation.
func Validate(fr *frame.Frame, shape Shape) Result {
	log.Debug().Str("command", fr.Command).Int("rules", len(shape.Rules)).Msg("schema.Validate")
	for _, rule := range shape.Rules {
		value, found := fr.Header.Get(rule.Name)
		if !found {
			if rule.Required {
				log.Error().Str("command", fr.Command).Str("header", rule.Name).Msg("schema.Validate missing header")
				return Result{
					Message: fmt.Sprintf("Header %q is required (Frame: %s)", rule.Name, fr),
					Violation: &ValidationError{
						Command: fr.Command,
						Header:  rule.Name,
						Reason:  ReasonMissing,
					},
				}
			}
			continue
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			pattern := "/" + rule.Pattern.String() + "/"
			log.Error().
				Str("command", fr.Command).
				Str("header", rule.Name).
				Str("value", value).
				Str("pattern", pattern).
				Msg("schema.Validate pattern mismatch")
			return Result{
				Message: fmt.Sprintf(
					"Header %q has value %q which does not match against the following regex: %s (Frame: %s)",
					rule.Name, value, pattern, fr,
				),
				Violation: &ValidationError{
					Command: fr.Command,
					Header:  rule.Name,
					Value:   value,
					Pattern: pattern,
					Reason:  ReasonMismatch,
				},
			}
		}
	}
	log.Info().Str("command", fr.Command).Msg("schema.Validate ok")
	return Result{Valid: true}
}
