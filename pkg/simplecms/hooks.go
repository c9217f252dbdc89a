package simplecms

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hook system allows extending Simple CMS behavior without modifying core code.
// Before hooks run after the access check and before the transaction opens; a
// returned error aborts the operation. After hooks run once the transaction
// has committed; their errors are logged.

// Hooks defines all available lifecycle hooks
type Hooks struct {
	// Content lifecycle hooks
	BeforeContentCreate []BeforeContentCreateHook
	AfterContentCreate  []AfterContentCreateHook
	BeforeContentUpdate []BeforeContentUpdateHook
	BeforeContentDelete []BeforeContentDeleteHook
	AfterContentDelete  []AfterContentDeleteHook

	// Version hooks
	AfterVersionCreate []AfterVersionCreateHook

	// Status change hooks
	OnStatusChange []StatusChangeHook

	// Error hooks
	OnError []ErrorHook
}

// HookContext carries information through the hook chain
type HookContext struct {
	Context   context.Context
	Actor     Actor
	Metadata  map[string]interface{} // Custom metadata passed between hooks
	StopChain bool                   // Set to true to stop processing remaining hooks
}

// NewHookContext creates a new hook context
func NewHookContext(ctx context.Context, actor Actor) *HookContext {
	return &HookContext{
		Context:  ctx,
		Actor:    actor,
		Metadata: make(map[string]interface{}),
	}
}

// BeforeContentCreateHook is called before creating content; it may modify req
type BeforeContentCreateHook func(hctx *HookContext, req *CreateContentRequest) error

// AfterContentCreateHook is called after content is created
type AfterContentCreateHook func(hctx *HookContext, content *Content) error

// BeforeContentUpdateHook is called before updating content; it may modify req
type BeforeContentUpdateHook func(hctx *HookContext, req *UpdateContentRequest) error

// BeforeContentDeleteHook is called before deleting content
type BeforeContentDeleteHook func(hctx *HookContext, contentID uuid.UUID) error

// AfterContentDeleteHook is called after content is deleted
type AfterContentDeleteHook func(hctx *HookContext, contentID uuid.UUID) error

// AfterVersionCreateHook is called after any operation appended a version
type AfterVersionCreateHook func(hctx *HookContext, version *ContentVersion) error

// StatusChangeHook is called when content status changes
type StatusChangeHook func(hctx *HookContext, contentID uuid.UUID, oldStatus, newStatus ContentStatus) error

// ErrorHook is called when an operation fails
type ErrorHook func(hctx *HookContext, operation string, err error)

func (h *Hooks) executeBeforeContentCreate(ctx context.Context, actor Actor, req *CreateContentRequest) error {
	if h == nil || len(h.BeforeContentCreate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.BeforeContentCreate {
		if err := hook(hctx, req); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterContentCreate(ctx context.Context, actor Actor, content *Content) error {
	if h == nil || len(h.AfterContentCreate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.AfterContentCreate {
		if err := hook(hctx, content); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeBeforeContentUpdate(ctx context.Context, actor Actor, req *UpdateContentRequest) error {
	if h == nil || len(h.BeforeContentUpdate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.BeforeContentUpdate {
		if err := hook(hctx, req); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeBeforeContentDelete(ctx context.Context, actor Actor, contentID uuid.UUID) error {
	if h == nil || len(h.BeforeContentDelete) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.BeforeContentDelete {
		if err := hook(hctx, contentID); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterContentDelete(ctx context.Context, actor Actor, contentID uuid.UUID) error {
	if h == nil || len(h.AfterContentDelete) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.AfterContentDelete {
		if err := hook(hctx, contentID); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterVersionCreate(ctx context.Context, actor Actor, version *ContentVersion) error {
	if h == nil || len(h.AfterVersionCreate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.AfterVersionCreate {
		if err := hook(hctx, version); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeOnStatusChange(ctx context.Context, actor Actor, contentID uuid.UUID, oldStatus, newStatus ContentStatus) error {
	if h == nil || len(h.OnStatusChange) == 0 || oldStatus == newStatus {
		return nil
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.OnStatusChange {
		if err := hook(hctx, contentID, oldStatus, newStatus); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeOnError(ctx context.Context, actor Actor, operation string, err error) {
	if h == nil || len(h.OnError) == 0 {
		return
	}

	hctx := NewHookContext(ctx, actor)
	for _, hook := range h.OnError {
		hook(hctx, operation, err)
		if hctx.StopChain {
			break
		}
	}
}

// Common hook implementations

// LoggingHook logs content lifecycle operations
func LoggingHook(logger *zap.Logger) *Hooks {
	return &Hooks{
		AfterContentCreate: []AfterContentCreateHook{
			func(hctx *HookContext, content *Content) error {
				logger.Info("content created", zap.Stringer("content_id", content.ID), zap.String("actor", hctx.Actor.Username))
				return nil
			},
		},
		AfterVersionCreate: []AfterVersionCreateHook{
			func(hctx *HookContext, version *ContentVersion) error {
				logger.Info("version appended",
					zap.Stringer("content_id", version.ContentID),
					zap.Int("version", version.VersionNumber),
					zap.String("notes", version.Notes))
				return nil
			},
		},
		AfterContentDelete: []AfterContentDeleteHook{
			func(hctx *HookContext, contentID uuid.UUID) error {
				logger.Info("content deleted", zap.Stringer("content_id", contentID), zap.String("actor", hctx.Actor.Username))
				return nil
			},
		},
		OnError: []ErrorHook{
			func(hctx *HookContext, operation string, err error) {
				logger.Warn("operation failed", zap.String("operation", operation), zap.Error(err))
			},
		},
	}
}

// ValidationHook adds custom validation before content creation
func ValidationHook(validator func(*CreateContentRequest) error) BeforeContentCreateHook {
	return func(hctx *HookContext, req *CreateContentRequest) error {
		return validator(req)
	}
}

// MetricsHook tracks operation counters
func MetricsHook(metrics interface {
	IncrementCounter(name string)
}) *Hooks {
	return &Hooks{
		AfterContentCreate: []AfterContentCreateHook{
			func(hctx *HookContext, content *Content) error {
				metrics.IncrementCounter("content.created")
				return nil
			},
		},
		AfterVersionCreate: []AfterVersionCreateHook{
			func(hctx *HookContext, version *ContentVersion) error {
				metrics.IncrementCounter("content.version_created")
				return nil
			},
		},
		AfterContentDelete: []AfterContentDeleteHook{
			func(hctx *HookContext, contentID uuid.UUID) error {
				metrics.IncrementCounter("content.deleted")
				return nil
			},
		},
	}
}

// Merge combines several hook sets into one, preserving order
func (h *Hooks) Merge(others ...*Hooks) *Hooks {
	out := &Hooks{}
	for _, src := range append([]*Hooks{h}, others...) {
		if src == nil {
			continue
		}
		out.BeforeContentCreate = append(out.BeforeContentCreate, src.BeforeContentCreate...)
		out.AfterContentCreate = append(out.AfterContentCreate, src.AfterContentCreate...)
		out.BeforeContentUpdate = append(out.BeforeContentUpdate, src.BeforeContentUpdate...)
		out.BeforeContentDelete = append(out.BeforeContentDelete, src.BeforeContentDelete...)
		out.AfterContentDelete = append(out.AfterContentDelete, src.AfterContentDelete...)
		out.AfterVersionCreate = append(out.AfterVersionCreate, src.AfterVersionCreate...)
		out.OnStatusChange = append(out.OnStatusChange, src.OnStatusChange...)
		out.OnError = append(out.OnError, src.OnError...)
	}
	return out
}
