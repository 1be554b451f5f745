package mocks

import (
	"strings"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc         func(params ...interface{}) (bool, error)
	RemovePolicyFunc      func(params ...interface{}) (bool, error)
	AddGroupingPolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc           func(rvals ...interface{}) (bool, error)
	GetPolicyFunc         func() ([][]string, error)
	policies              [][]string
	groupings             map[string]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with default behaviors
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{
		policies:  [][]string{},
		groupings: map[string]string{},
	}
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}
	
	// Default behavior: add to internal policies list
	if len(params) >= 3 {
		policy := make([]string, len(params))
		for i, param := range params {
			if str, ok := param.(string); ok {
				policy[i] = str
			}
		}
		for _, existing := range m.policies {
			if strings.Join(existing, ",") == strings.Join(policy, ",") {
				return false, nil
			}
		}
		m.policies = append(m.policies, policy)
		return true, nil
	}
	return false, nil
}

// RemovePolicy removes a policy rule
func (m *MockCasbinEnforcer) RemovePolicy(params ...interface{}) (bool, error) {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(params...)
	}
	
	// Default behavior: remove from internal policies list
	if len(params) >= 3 {
		targetPolicy := make([]string, len(params))
		for i, param := range params {
			if str, ok := param.(string); ok {
				targetPolicy[i] = str
			}
		}
		
		for i, policy := range m.policies {
			if len(policy) == len(targetPolicy) {
				match := true
				for j, val := range policy {
					if val != targetPolicy[j] {
						match = false
						break
					}
				}
				if match {
					m.policies = append(m.policies[:i], m.policies[i+1:]...)
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// AddGroupingPolicy makes the first role inherit the second
func (m *MockCasbinEnforcer) AddGroupingPolicy(params ...interface{}) (bool, error) {
	if m.AddGroupingPolicyFunc != nil {
		return m.AddGroupingPolicyFunc(params...)
	}
	if len(params) != 2 {
		return false, nil
	}
	child, ok1 := params[0].(string)
	parent, ok2 := params[1].(string)
	if !ok1 || !ok2 {
		return false, nil
	}
	if m.groupings[child] == parent {
		return false, nil
	}
	m.groupings[child] = parent
	return true, nil
}

// Enforce checks if a request should be allowed. Resources ending in "*" match
// by prefix and actions are "|" separated alternatives.
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}
	if len(rvals) < 3 {
		return false, nil
	}
	role, ok1 := rvals[0].(string)
	resource, ok2 := rvals[1].(string)
	action, ok3 := rvals[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return false, nil
	}

	for r := role; r != ""; r = m.groupings[r] {
		for _, policy := range m.policies {
			if len(policy) < 3 || policy[0] != r {
				continue
			}
			if matchResource(policy[1], resource) && matchAction(policy[2], action) {
				return true, nil
			}
		}
	}
	return false, nil
}

func matchResource(pattern, resource string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(resource, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == resource
}

func matchAction(pattern, action string) bool {
	for _, alt := range strings.Split(pattern, "|") {
		if strings.Trim(alt, "()") == action {
			return true
		}
	}
	return false
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	// Return copy of internal policies
	result := make([][]string, len(m.policies))
	for i, policy := range m.policies {
		result[i] = make([]string, len(policy))
		copy(result[i], policy)
	}
	return result, nil
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = make([][]string, len(policies))
	for i, policy := range policies {
		m.policies[i] = make([]string, len(policy))
		copy(m.policies[i], policy)
	}
}