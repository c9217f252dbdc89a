package access

import (
	"fmt"
	"os"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"gopkg.in/yaml.v3"
)

// Wildcard grants every capability to a role.
const Wildcard simplecms.Capability = "*"

// Role names used by DefaultPolicy.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleAuthor = "author"
	RoleViewer = "viewer"
)

// Policy maps role names to the capabilities they hold. Role names are
// matched case-insensitively.
type Policy struct {
	Roles map[string][]simplecms.Capability `yaml:"roles"`
}

// DefaultPolicy returns the built-in role table.
func DefaultPolicy() *Policy {
	return &Policy{
		Roles: map[string][]simplecms.Capability{
			RoleAdmin: {Wildcard},
			RoleEditor: {
				simplecms.CapCreateContent,
				simplecms.CapEditOwnContent,
				simplecms.CapEditAnyContent,
				simplecms.CapPublishContent,
				simplecms.CapRestoreContentVersions,
				simplecms.CapDeleteContent,
			},
			RoleAuthor: {
				simplecms.CapCreateContent,
				simplecms.CapEditOwnContent,
			},
			RoleViewer: {},
		},
	}
}

// LoadPolicy reads a YAML policy file of the form
//
//	roles:
//	  editor: [create_content, edit_any_content]
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read access policy: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a YAML policy document.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse access policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that the policy declares at least one role and only
// known capabilities.
func (p *Policy) Validate() error {
	if len(p.Roles) == 0 {
		return fmt.Errorf("access policy declares no roles")
	}
	for role, caps := range p.Roles {
		if strings.TrimSpace(role) == "" {
			return fmt.Errorf("access policy has an empty role name")
		}
		for _, c := range caps {
			if !knownCapability(c) {
				return fmt.Errorf("role %s: unknown capability %q", role, c)
			}
		}
	}
	return nil
}

// Allows reports whether role holds capability.
func (p *Policy) Allows(role string, capability simplecms.Capability) bool {
	for name, caps := range p.Roles {
		if !strings.EqualFold(name, role) {
			continue
		}
		for _, c := range caps {
			if c == capability || c == Wildcard {
				return true
			}
		}
	}
	return false
}

func knownCapability(c simplecms.Capability) bool {
	switch c {
	case Wildcard,
		simplecms.CapCreateContent,
		simplecms.CapEditOwnContent,
		simplecms.CapEditAnyContent,
		simplecms.CapPublishContent,
		simplecms.CapRestoreContentVersions,
		simplecms.CapDeleteContent,
		simplecms.CapManageContentTypes:
		return true
	default:
		return false
	}
}
