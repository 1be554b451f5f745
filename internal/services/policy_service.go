package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// CasbinEnforcerWrapper wraps the real Casbin enforcer to implement our interface
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

// NewCasbinEnforcerWrapper creates a wrapper for the real Casbin enforcer
func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) AddGroupingPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddGroupingPolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

const adminMethods = "(GET)|(POST)|(PUT)|(PATCH)|(DELETE)"

// DefaultPolicies is the table access every deployment starts with
var DefaultPolicies = [][3]string{
	{domain.RoleAnon, "/api/*", "GET"},
	{domain.RoleAnon, "/api/hire-requests", "POST"},
	{domain.RoleAdmin, "/admin/api/*", adminMethods},
	{domain.RoleAdmin, "/functions/v1/*", "POST"},
}

// DefaultRoleInheritance lists child, parent role pairs
var DefaultRoleInheritance = [][2]string{
	{domain.RoleAuthenticated, domain.RoleAnon},
	{domain.RoleAdmin, domain.RoleAuthenticated},
}

// PolicyServiceImpl implements domain.PolicyService using Casbin
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: NewCasbinEnforcerWrapper(enforcer),
	}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{
		enforcer: enforcer,
	}
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	return err
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	return err
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, err := p.enforcer.GetPolicy()
	if err != nil {
		return [][]string{}
	}
	return policies
}

// SeedDefaults implements domain.PolicyService. Existing rules are left alone
// and each new rule is written by the adapter as it is added.
func (p *PolicyServiceImpl) SeedDefaults() error {
	for _, rule := range DefaultPolicies {
		if _, err := p.enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
			return fmt.Errorf("failed to add policy %v: %w", rule, err)
		}
	}
	for _, pair := range DefaultRoleInheritance {
		if _, err := p.enforcer.AddGroupingPolicy(pair[0], pair[1]); err != nil {
			return fmt.Errorf("failed to make %s inherit %s: %w", pair[0], pair[1], err)
		}
	}
	return nil
}
