package authorize

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

// Manager plugs into the dispatch authorization decorator.
var _ dispatch.Authorizer = (*Manager)(nil)

// Manager holds rule sets keyed by message type and evaluates them.
// Registration is append-only: rules can be added for a message type at any
// time but never removed or reordered. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	ruleSets map[string][]Rule
}

// NewManager creates an empty authorization manager.
func NewManager() *Manager {
	return &Manager{
		ruleSets: make(map[string][]Rule),
	}
}

// RegisterRules appends rules to the rule set for the given message type.
// Rules are evaluated in registration order. A rule whose name is already
// present in the message type's set is skipped, so repeated registration
// of the same wiring is harmless.
func (m *Manager) RegisterRules(messageType string, rules ...Rule) error {
	if messageType == "" {
		return ErrEmptyMessageType
	}

	for _, rule := range rules {
		if rule == nil {
			return errors.Join(ErrNilRule, fmt.Errorf("message type: %s", messageType))
		}

		if rule.RuleName() == "" {
			return errors.Join(ErrEmptyRuleName, fmt.Errorf("message type: %s", messageType))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.ruleSets[messageType]
	known := make(map[string]struct{}, len(existing))
	for _, rule := range existing {
		known[rule.RuleName()] = struct{}{}
	}

	// Copy before appending so concurrent readers holding the old slice
	// never observe a partially extended rule set.
	extended := make([]Rule, len(existing), len(existing)+len(rules))
	copy(extended, existing)

	for _, rule := range rules {
		if _, duplicate := known[rule.RuleName()]; duplicate {
			continue
		}

		known[rule.RuleName()] = struct{}{}
		extended = append(extended, rule)
	}

	m.ruleSets[messageType] = extended

	return nil
}

// RuleNames returns the names of the rules registered for the given message
// type, in registration order.
func (m *Manager) RuleNames(messageType string) []string {
	m.mu.RLock()
	rules := m.ruleSets[messageType]
	m.mu.RUnlock()

	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule.RuleName())
	}

	return names
}

// Authorize evaluates every rule registered for the message type, never
// short-circuiting on the first denial.
//
// With no failing rule it returns nil. A single failing rule yields an
// *AuthorizationError, two or more yield an *AggregateAuthorizationError
// with the reasons in registration order. A message type without a
// registered rule set fails with ErrNoRuleSetConfigured.
func (m *Manager) Authorize(ctx context.Context, messageType string, message any) error {
	m.mu.RLock()
	rules, configured := m.ruleSets[messageType]
	m.mu.RUnlock()

	if !configured {
		return errors.Join(ErrNoRuleSetConfigured, fmt.Errorf("message type: %s", messageType))
	}

	var denials []AuthorizationError

	for _, rule := range rules {
		if rule.IsAuthorized(ctx, message) {
			continue
		}

		denials = append(denials, AuthorizationError{
			MessageType: messageType,
			RuleName:    rule.RuleName(),
			Reason:      rule.ErrorText(),
		})
	}

	switch len(denials) {
	case 0:
		return nil
	case 1:
		denial := denials[0]
		return &denial
	default:
		return &AggregateAuthorizationError{
			MessageType: messageType,
			Denials:     denials,
		}
	}
}
