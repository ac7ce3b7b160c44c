package authorize

import "context"

// Rule is a single authorization check for one message type.
// Implementations must be safe for concurrent use.
type Rule interface {
	// RuleName identifies the rule within its rule set. Names must be
	// unique per message type; registering a second rule with the same
	// name for the same message type is ignored.
	RuleName() string

	// IsAuthorized reports whether the given message passes this rule.
	IsAuthorized(ctx context.Context, message any) bool

	// ErrorText is the human-readable reason reported when the rule denies.
	ErrorText() string
}

// RuleFunc adapts plain functions to the Rule interface.
type RuleFunc struct {
	Name       string
	Authorized func(ctx context.Context, message any) bool
	Reason     string
}

// RuleName implements the Rule interface.
func (r RuleFunc) RuleName() string {
	return r.Name
}

// IsAuthorized implements the Rule interface.
func (r RuleFunc) IsAuthorized(ctx context.Context, message any) bool {
	if r.Authorized == nil {
		return false
	}

	return r.Authorized(ctx, message)
}

// ErrorText implements the Rule interface.
func (r RuleFunc) ErrorText() string {
	return r.Reason
}
