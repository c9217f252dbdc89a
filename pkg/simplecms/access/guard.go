// Package access provides role based AccessGuard implementations.
package access

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"go.uber.org/zap"
)

// Guard authorizes requests against a Policy.
type Guard struct {
	policy *Policy
	logger *zap.Logger
}

// Option configures a Guard
type Option func(*Guard)

// WithLogger logs denials at Debug level
func WithLogger(logger *zap.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGuard creates a guard for policy. A nil policy uses DefaultPolicy.
func NewGuard(policy *Policy, opts ...Option) *Guard {
	if policy == nil {
		policy = DefaultPolicy()
	}
	g := &Guard{policy: policy, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize grants the request when the actor's role holds the capability.
// A request for edit_any_content on an entry the actor created is also
// granted when the role holds edit_own_content.
func (g *Guard) Authorize(ctx context.Context, req simplecms.AccessRequest) error {
	role := req.Actor.Role
	if g.policy.Allows(role, req.Capability) {
		return nil
	}
	if req.Capability == simplecms.CapEditAnyContent && req.OwnerID != nil &&
		*req.OwnerID == req.Actor.ID && g.policy.Allows(role, simplecms.CapEditOwnContent) {
		return nil
	}

	g.logger.Debug("access denied",
		zap.Stringer("actor_id", req.Actor.ID),
		zap.String("role", role),
		zap.String("capability", string(req.Capability)))
	return &simplecms.PermissionDeniedError{
		ActorID:    req.Actor.ID,
		Role:       role,
		Capability: req.Capability,
	}
}

// AllowAll approves every request. It is meant for trusted tooling such
// as the admin CLI.
type AllowAll struct{}

// Authorize always returns nil.
func (AllowAll) Authorize(ctx context.Context, req simplecms.AccessRequest) error {
	return nil
}
