package authorize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRuleSetConfigured indicates that authorization was requested for a
// message type that has no registered rule set.
var ErrNoRuleSetConfigured = errors.New("no authorization rule set configured")

// ErrEmptyMessageType indicates that a rule set was registered with an empty
// message type.
var ErrEmptyMessageType = errors.New("message type must not be empty")

// ErrNilRule indicates that a rule set was registered containing a nil rule.
var ErrNilRule = errors.New("rule must not be nil")

// ErrEmptyRuleName indicates that a rule was registered with an empty name.
var ErrEmptyRuleName = errors.New("rule name must not be empty")

// AuthorizationError reports a single denied authorization rule.
type AuthorizationError struct {
	MessageType string
	RuleName    string
	Reason      string
}

// Error implements the error interface.
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization denied for %s: %s", e.MessageType, e.Reason)
}

// AuthorizationDenied marks this error as an authorization denial.
func (e *AuthorizationError) AuthorizationDenied() bool {
	return true
}

// AggregateAuthorizationError reports two or more denied authorization rules.
// Reasons are ordered by rule registration order.
type AggregateAuthorizationError struct {
	MessageType string
	Denials     []AuthorizationError
}

// Error implements the error interface.
func (e *AggregateAuthorizationError) Error() string {
	reasons := make([]string, 0, len(e.Denials))
	for _, denial := range e.Denials {
		reasons = append(reasons, denial.Reason)
	}

	return fmt.Sprintf(
		"authorization denied for %s by %d rules: %s",
		e.MessageType,
		len(e.Denials),
		strings.Join(reasons, "; "),
	)
}

// AuthorizationDenied marks this error as an authorization denial.
func (e *AggregateAuthorizationError) AuthorizationDenied() bool {
	return true
}

// Reasons returns the denial reasons in rule registration order.
func (e *AggregateAuthorizationError) Reasons() []string {
	reasons := make([]string, 0, len(e.Denials))
	for _, denial := range e.Denials {
		reasons = append(reasons, denial.Reason)
	}

	return reasons
}
