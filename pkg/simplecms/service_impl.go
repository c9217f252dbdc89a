package simplecms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	repository Repository
	guard      AccessGuard
	eventSink  EventSink
	cache      SchemaCache
	media      MediaResolver
	hooks      *Hooks
	logger     *zap.Logger
	now        Clock
	newID      IDGenerator
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithAccessGuard sets the guard consulted before every mutation
func WithAccessGuard(guard AccessGuard) Option {
	return func(s *service) {
		s.guard = guard
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithSchemaCache sets a cache for content type reads
func WithSchemaCache(cache SchemaCache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// WithMediaResolver validates media ids written to media fields
func WithMediaResolver(resolver MediaResolver) Option {
	return func(s *service) {
		s.media = resolver
	}
}

// WithHooks adds lifecycle hooks
func WithHooks(hooks *Hooks) Option {
	return func(s *service) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source
func WithClock(clock Clock) Option {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides id generation
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		eventSink: NewNoopEventSink(),
		hooks:     &Hooks{},
		logger:    zap.NewNop(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.New,
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.guard == nil {
		return nil, fmt.Errorf("access guard is required")
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}

	return s, nil
}

func (s *service) authorize(ctx context.Context, actor Actor, capability Capability, owner *uuid.UUID) error {
	return s.guard.Authorize(ctx, AccessRequest{Actor: actor, Capability: capability, OwnerID: owner})
}

func (s *service) emit(event string, err error) {
	if err != nil {
		s.logger.Warn("event sink failed", zap.String("event", event), zap.Error(err))
	}
}

func (s *service) afterHook(op string, err error) {
	if err != nil {
		s.logger.Warn("after hook failed", zap.String("operation", op), zap.Error(err))
	}
}

func actorName(actor Actor) string {
	if actor.Username != "" {
		return actor.Username
	}
	return actor.ID.String()
}

// getContentType reads a content type through the schema cache.
func (s *service) getContentType(ctx context.Context, id uuid.UUID) (*ContentType, error) {
	if s.cache != nil {
		ct, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("schema cache get failed", zap.Stringer("content_type_id", id), zap.Error(err))
		} else if ok {
			return ct, nil
		}
	}
	ct, err := s.repository.GetContentType(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, ct)
	return ct, nil
}

func (s *service) cacheSet(ctx context.Context, ct *ContentType) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, ct); err != nil {
		s.logger.Warn("schema cache set failed", zap.Stringer("content_type_id", ct.ID), zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warn("schema cache delete failed", zap.Stringer("content_type_id", id), zap.Error(err))
	}
}

// loadValues returns the current values of an entry keyed by field key.
func loadValues(ctx context.Context, r Reader, ct *ContentType, contentID uuid.UUID) (map[string]Value, error) {
	rows, err := r.GetFieldValues(ctx, contentID)
	if err != nil {
		return nil, err
	}
	keys := make(map[uuid.UUID]string, len(ct.Fields))
	for _, f := range ct.Fields {
		keys[f.ID] = f.Key
	}
	values := make(map[string]Value, len(rows))
	for _, fv := range rows {
		if key, ok := keys[fv.FieldID]; ok {
			values[key] = fv.Value
		}
	}
	return values, nil
}

// snapshot resolves the total field map of an entry: every field of the
// schema, nil where no value is stored.
func snapshot(fields []*FieldDefinition, values map[string]Value) map[string]interface{} {
	data := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		data[f.Key] = ResolveValue(values[f.Key])
	}
	return data
}

// writeField coerces raw for field and replaces the stored value. A nil
// result removes the stored value.
func (s *service) writeField(ctx context.Context, tx Store, actor Actor, content *Content, field *FieldDefinition, raw interface{}, checkMedia bool) (Value, error) {
	v, err := Coerce(field, raw)
	if err != nil {
		return nil, err
	}
	if v == nil {
		if err := tx.DeleteFieldValue(ctx, content.ID, field.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if checkMedia {
		if err := s.checkMedia(ctx, field.Key, v); err != nil {
			return nil, err
		}
	}
	now := s.now()
	fv := &FieldValue{
		ID:          s.newID(),
		ContentID:   content.ID,
		FieldID:     field.ID,
		UpdatedByID: actor.ID,
		Value:       v,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.UpsertFieldValue(ctx, fv); err != nil {
		return nil, err
	}
	return v, nil
}

// writeFields applies raw over values in display order and returns the
// resulting value map. Keys unknown to the schema are ignored.
func (s *service) writeFields(ctx context.Context, tx Store, actor Actor, content *Content, ct *ContentType, values map[string]Value, raw map[string]interface{}) (map[string]Value, error) {
	out := make(map[string]Value, len(ct.Fields))
	for k, v := range values {
		out[k] = v
	}
	for _, f := range SortFields(ct.Fields) {
		r, ok := raw[f.Key]
		if !ok {
			continue
		}
		v, err := s.writeField(ctx, tx, actor, content, f, r, true)
		if err != nil {
			return nil, err
		}
		if v == nil {
			delete(out, f.Key)
		} else {
			out[f.Key] = v
		}
	}
	for k := range raw {
		if _, ok := ct.Field(k); !ok {
			s.logger.Debug("ignoring unknown field", zap.String("field", k), zap.Stringer("content_type_id", ct.ID))
		}
	}
	return out, nil
}

func (s *service) checkMedia(ctx context.Context, key string, v Value) error {
	if s.media == nil {
		return nil
	}
	var ids []string
	switch val := v.(type) {
	case MediaValue:
		ids = append(ids, string(val))
	case ArrayValue:
		for _, item := range val {
			if m, ok := item.(MediaValue); ok {
				ids = append(ids, string(m))
			}
		}
	}
	for _, id := range ids {
		ok, err := s.media.Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("resolve media %s: %w", id, err)
		}
		if !ok {
			return invalid(key, "media %q not found", id)
		}
	}
	return nil
}

// appendVersion records the next version of content. The number is computed
// inside the transaction from the current maximum.
func (s *service) appendVersion(ctx context.Context, tx Store, actor Actor, content *Content, data map[string]interface{}, notes string) (*ContentVersion, error) {
	latest, err := tx.MaxVersionNumber(ctx, content.ID)
	if err != nil {
		return nil, err
	}
	version := &ContentVersion{
		ID:            s.newID(),
		ContentID:     content.ID,
		VersionNumber: latest + 1,
		Title:         content.Title,
		Status:        content.Status,
		Data:          data,
		CreatedByID:   actor.ID,
		Notes:         notes,
		CreatedAt:     s.now(),
	}
	if err := tx.CreateVersion(ctx, version); err != nil {
		return nil, err
	}
	return version, nil
}

// copyData returns a shallow copy of a snapshot map.
func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
