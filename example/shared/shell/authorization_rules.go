package shell

import (
	"context"

	"github.com/dispatchkit/cqrs-dispatch-go/authorize"
)

// ExposesOrderAmount is implemented by commands that carry an order amount.
// Authorization rules assert against this interface instead of concrete
// command types, so the rules stay decoupled from the feature slices.
type ExposesOrderAmount interface {
	HasAmountCents() int64
}

// ExposesCancellationReason is implemented by commands that carry a
// cancellation reason.
type ExposesCancellationReason interface {
	HasCancellationReason() string
}

// AmountIsPositiveRule denies commands whose order amount is zero or negative.
func AmountIsPositiveRule() authorize.Rule {
	return authorize.RuleFunc{
		Name: "amount_is_positive",
		Authorized: func(_ context.Context, message any) bool {
			command, ok := message.(ExposesOrderAmount)
			return ok && command.HasAmountCents() > 0
		},
		Reason: "order amount must be positive",
	}
}

// AmountWithinLimitRule denies commands whose order amount exceeds the given limit.
func AmountWithinLimitRule(limitCents int64) authorize.Rule {
	return authorize.RuleFunc{
		Name: "amount_within_limit",
		Authorized: func(_ context.Context, message any) bool {
			command, ok := message.(ExposesOrderAmount)
			return ok && command.HasAmountCents() <= limitCents
		},
		Reason: "order amount exceeds the approval limit",
	}
}

// ReasonIsGivenRule denies cancellation commands without a reason.
func ReasonIsGivenRule() authorize.Rule {
	return authorize.RuleFunc{
		Name: "reason_is_given",
		Authorized: func(_ context.Context, message any) bool {
			command, ok := message.(ExposesCancellationReason)
			return ok && command.HasCancellationReason() != ""
		},
		Reason: "a cancellation reason must be given",
	}
}
