package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// state is one committed snapshot of the store. Objects reachable from a
// committed state are never modified; transactions replace them with copies.
type state struct {
	types    map[uuid.UUID]*simplecms.ContentType
	contents map[uuid.UUID]*simplecms.Content
	values   map[uuid.UUID]map[uuid.UUID]*simplecms.FieldValue // content_id -> field_id -> value
	versions map[uuid.UUID][]*simplecms.ContentVersion        // content_id -> versions ascending
}

func newState() *state {
	return &state{
		types:    make(map[uuid.UUID]*simplecms.ContentType),
		contents: make(map[uuid.UUID]*simplecms.Content),
		values:   make(map[uuid.UUID]map[uuid.UUID]*simplecms.FieldValue),
		versions: make(map[uuid.UUID][]*simplecms.ContentVersion),
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.types {
		out.types[k] = v
	}
	for k, v := range s.contents {
		out.contents[k] = v
	}
	for k, m := range s.values {
		inner := make(map[uuid.UUID]*simplecms.FieldValue, len(m))
		for fk, fv := range m {
			inner[fk] = fv
		}
		out.values[k] = inner
	}
	for k, vs := range s.versions {
		out.versions[k] = append([]*simplecms.ContentVersion(nil), vs...)
	}
	return out
}

// Repository implements simplecms.Repository using in-memory storage.
//
// Writers are serialized; each transaction works on a private copy of the
// state that replaces the committed state on success. Readers only ever see
// committed state and do not wait for writers.
type Repository struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   *state
}

// New creates a new in-memory repository
func New() simplecms.Repository {
	return &Repository{state: newState()}
}

func (r *Repository) current() reader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reader{st: r.state}
}

// WithTx runs fn against a private copy of the state and commits it when fn
// succeeds.
func (r *Repository) WithTx(ctx context.Context, fn func(simplecms.Store) error) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	work := r.state.clone()
	r.mu.RUnlock()

	if err := fn(&store{reader: reader{st: work}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.state = work
	r.mu.Unlock()
	return nil
}

// Reader operations on committed state

func (r *Repository) GetContentType(ctx context.Context, id uuid.UUID) (*simplecms.ContentType, error) {
	return r.current().GetContentType(ctx, id)
}

func (r *Repository) GetContentTypeBySlug(ctx context.Context, slug string) (*simplecms.ContentType, error) {
	return r.current().GetContentTypeBySlug(ctx, slug)
}

func (r *Repository) ListContentTypes(ctx context.Context) ([]*simplecms.ContentType, error) {
	return r.current().ListContentTypes(ctx)
}

func (r *Repository) CountContentByType(ctx context.Context, contentTypeID uuid.UUID) (int, error) {
	return r.current().CountContentByType(ctx, contentTypeID)
}

func (r *Repository) GetContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	return r.current().GetContent(ctx, id)
}

func (r *Repository) ListContent(ctx context.Context, params simplecms.ListContentParams) ([]*simplecms.Content, error) {
	return r.current().ListContent(ctx, params)
}

func (r *Repository) GetFieldValues(ctx context.Context, contentID uuid.UUID) ([]*simplecms.FieldValue, error) {
	return r.current().GetFieldValues(ctx, contentID)
}

func (r *Repository) ListVersions(ctx context.Context, contentID uuid.UUID) ([]*simplecms.ContentVersion, error) {
	return r.current().ListVersions(ctx, contentID)
}

func (r *Repository) GetVersion(ctx context.Context, contentID uuid.UUID, versionNumber int) (*simplecms.ContentVersion, error) {
	return r.current().GetVersion(ctx, contentID, versionNumber)
}

// reader implements simplecms.Reader over one state.
type reader struct {
	st *state
}

func (v reader) GetContentType(ctx context.Context, id uuid.UUID) (*simplecms.ContentType, error) {
	ct, ok := v.st.types[id]
	if !ok {
		return nil, simplecms.ErrSchemaNotFound
	}
	return copyContentType(ct), nil
}

func (v reader) GetContentTypeBySlug(ctx context.Context, slug string) (*simplecms.ContentType, error) {
	for _, ct := range v.st.types {
		if ct.Slug == slug {
			return copyContentType(ct), nil
		}
	}
	return nil, simplecms.ErrSchemaNotFound
}

func (v reader) ListContentTypes(ctx context.Context) ([]*simplecms.ContentType, error) {
	out := make([]*simplecms.ContentType, 0, len(v.st.types))
	for _, ct := range v.st.types {
		out = append(out, copyContentType(ct))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v reader) CountContentByType(ctx context.Context, contentTypeID uuid.UUID) (int, error) {
	n := 0
	for _, c := range v.st.contents {
		if c.ContentTypeID == contentTypeID {
			n++
		}
	}
	return n, nil
}

func (v reader) GetContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	c, ok := v.st.contents[id]
	if !ok {
		return nil, simplecms.ErrContentNotFound
	}
	return copyContent(c), nil
}

func (v reader) ListContent(ctx context.Context, params simplecms.ListContentParams) ([]*simplecms.Content, error) {
	var out []*simplecms.Content
	for _, c := range v.st.contents {
		if params.ContentTypeID != nil && c.ContentTypeID != *params.ContentTypeID {
			continue
		}
		if params.Status != nil && c.Status != *params.Status {
			continue
		}
		out = append(out, copyContent(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return []*simplecms.Content{}, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

func (v reader) GetFieldValues(ctx context.Context, contentID uuid.UUID) ([]*simplecms.FieldValue, error) {
	m := v.st.values[contentID]
	out := make([]*simplecms.FieldValue, 0, len(m))
	for _, fv := range m {
		out = append(out, copyFieldValue(fv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldID.String() < out[j].FieldID.String() })
	return out, nil
}

func (v reader) ListVersions(ctx context.Context, contentID uuid.UUID) ([]*simplecms.ContentVersion, error) {
	vs := v.st.versions[contentID]
	out := make([]*simplecms.ContentVersion, 0, len(vs))
	for _, ver := range vs {
		out = append(out, copyVersion(ver))
	}
	return out, nil
}

func (v reader) GetVersion(ctx context.Context, contentID uuid.UUID, versionNumber int) (*simplecms.ContentVersion, error) {
	for _, ver := range v.st.versions[contentID] {
		if ver.VersionNumber == versionNumber {
			return copyVersion(ver), nil
		}
	}
	return nil, simplecms.ErrVersionNotFound
}

// store implements simplecms.Store on a transaction's private state.
type store struct {
	reader
}

func (s *store) CreateContentType(ctx context.Context, ct *simplecms.ContentType) error {
	for _, existing := range s.st.types {
		if existing.Name == ct.Name || existing.Slug == ct.Slug {
			return fmt.Errorf("%w: name %q or slug %q is taken", simplecms.ErrDuplicateSchema, ct.Name, ct.Slug)
		}
	}
	keys := make(map[string]bool, len(ct.Fields))
	for _, f := range ct.Fields {
		if keys[f.Key] {
			return &simplecms.ValidationError{Field: f.Key, Message: "duplicate field key"}
		}
		keys[f.Key] = true
	}
	s.st.types[ct.ID] = copyContentType(ct)
	return nil
}

func (s *store) UpdateContentType(ctx context.Context, ct *simplecms.ContentType) error {
	existing, ok := s.st.types[ct.ID]
	if !ok {
		return simplecms.ErrSchemaNotFound
	}
	for id, other := range s.st.types {
		if id != ct.ID && (other.Name == ct.Name || other.Slug == ct.Slug) {
			return fmt.Errorf("%w: name %q or slug %q is taken", simplecms.ErrDuplicateSchema, ct.Name, ct.Slug)
		}
	}
	updated := copyContentType(ct)
	updated.Fields = copyContentType(existing).Fields
	s.st.types[ct.ID] = updated
	return nil
}

func (s *store) DeleteContentType(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.st.types[id]; !ok {
		return simplecms.ErrSchemaNotFound
	}
	for _, c := range s.st.contents {
		if c.ContentTypeID == id {
			return simplecms.ErrDependentContentExists
		}
	}
	delete(s.st.types, id)
	return nil
}

func (s *store) CreateField(ctx context.Context, field *simplecms.FieldDefinition) error {
	ct, ok := s.st.types[field.ContentTypeID]
	if !ok {
		return simplecms.ErrSchemaNotFound
	}
	if _, exists := ct.Field(field.Key); exists {
		return &simplecms.ValidationError{Field: field.Key, Message: "duplicate field key"}
	}
	updated := copyContentType(ct)
	updated.Fields = simplecms.SortFields(append(updated.Fields, copyField(field)))
	s.st.types[ct.ID] = updated
	return nil
}

func (s *store) UpdateField(ctx context.Context, field *simplecms.FieldDefinition) error {
	ct, ok := s.st.types[field.ContentTypeID]
	if !ok {
		return simplecms.ErrSchemaNotFound
	}
	updated := copyContentType(ct)
	for i, f := range updated.Fields {
		if f.ID == field.ID {
			cp := copyField(field)
			cp.Key = f.Key
			cp.CreatedAt = f.CreatedAt
			updated.Fields[i] = cp
			updated.Fields = simplecms.SortFields(updated.Fields)
			s.st.types[ct.ID] = updated
			return nil
		}
	}
	return simplecms.ErrFieldNotFound
}

func (s *store) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	for id, ct := range s.st.types {
		for i, f := range ct.Fields {
			if f.ID != fieldID {
				continue
			}
			updated := copyContentType(ct)
			updated.Fields = append(updated.Fields[:i:i], updated.Fields[i+1:]...)
			s.st.types[id] = updated
			for _, m := range s.st.values {
				delete(m, fieldID)
			}
			return nil
		}
	}
	return simplecms.ErrFieldNotFound
}

func (s *store) LockContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	return s.GetContent(ctx, id)
}

func (s *store) slugTaken(contentTypeID uuid.UUID, slug string, self uuid.UUID) bool {
	for id, c := range s.st.contents {
		if id != self && c.ContentTypeID == contentTypeID && c.Slug == slug {
			return true
		}
	}
	return false
}

func (s *store) CreateContent(ctx context.Context, content *simplecms.Content) error {
	if _, ok := s.st.types[content.ContentTypeID]; !ok {
		return simplecms.ErrSchemaNotFound
	}
	if s.slugTaken(content.ContentTypeID, content.Slug, content.ID) {
		return fmt.Errorf("%w: %q", simplecms.ErrDuplicateSlug, content.Slug)
	}
	s.st.contents[content.ID] = copyContent(content)
	return nil
}

func (s *store) UpdateContent(ctx context.Context, content *simplecms.Content) error {
	if _, ok := s.st.contents[content.ID]; !ok {
		return simplecms.ErrContentNotFound
	}
	if s.slugTaken(content.ContentTypeID, content.Slug, content.ID) {
		return fmt.Errorf("%w: %q", simplecms.ErrDuplicateSlug, content.Slug)
	}
	s.st.contents[content.ID] = copyContent(content)
	return nil
}

func (s *store) DeleteContent(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.st.contents[id]; !ok {
		return simplecms.ErrContentNotFound
	}
	if len(s.st.values[id]) > 0 || len(s.st.versions[id]) > 0 {
		return fmt.Errorf("content %s still has field values or versions", id)
	}
	delete(s.st.contents, id)
	delete(s.st.values, id)
	delete(s.st.versions, id)
	return nil
}

func (s *store) UpsertFieldValue(ctx context.Context, value *simplecms.FieldValue) error {
	if _, ok := s.st.contents[value.ContentID]; !ok {
		return simplecms.ErrContentNotFound
	}
	if !s.fieldExists(value.FieldID) {
		return simplecms.ErrFieldNotFound
	}
	if value.Value == nil {
		return fmt.Errorf("field value for %s has no populated slot", value.FieldID)
	}
	m := s.st.values[value.ContentID]
	if m == nil {
		m = make(map[uuid.UUID]*simplecms.FieldValue)
		s.st.values[value.ContentID] = m
	}
	cp := copyFieldValue(value)
	if existing, ok := m[value.FieldID]; ok {
		cp.ID = existing.ID
		cp.CreatedAt = existing.CreatedAt
	}
	m[value.FieldID] = cp
	return nil
}

func (s *store) fieldExists(fieldID uuid.UUID) bool {
	for _, ct := range s.st.types {
		for _, f := range ct.Fields {
			if f.ID == fieldID {
				return true
			}
		}
	}
	return false
}

func (s *store) DeleteFieldValue(ctx context.Context, contentID, fieldID uuid.UUID) error {
	if m := s.st.values[contentID]; m != nil {
		delete(m, fieldID)
	}
	return nil
}

func (s *store) DeleteFieldValues(ctx context.Context, contentID uuid.UUID) error {
	delete(s.st.values, contentID)
	return nil
}

func (s *store) MaxVersionNumber(ctx context.Context, contentID uuid.UUID) (int, error) {
	latest := 0
	for _, v := range s.st.versions[contentID] {
		if v.VersionNumber > latest {
			latest = v.VersionNumber
		}
	}
	return latest, nil
}

func (s *store) CreateVersion(ctx context.Context, version *simplecms.ContentVersion) error {
	if _, ok := s.st.contents[version.ContentID]; !ok {
		return simplecms.ErrContentNotFound
	}
	for _, v := range s.st.versions[version.ContentID] {
		if v.VersionNumber == version.VersionNumber {
			return fmt.Errorf("%w: version %d of content %s", simplecms.ErrConcurrentVersionConflict, version.VersionNumber, version.ContentID)
		}
	}
	vs := append(s.st.versions[version.ContentID], copyVersion(version))
	sort.Slice(vs, func(i, j int) bool { return vs[i].VersionNumber < vs[j].VersionNumber })
	s.st.versions[version.ContentID] = vs
	return nil
}

func (s *store) DeleteVersions(ctx context.Context, contentID uuid.UUID) error {
	delete(s.st.versions, contentID)
	return nil
}

// Copy helpers

func copyField(f *simplecms.FieldDefinition) *simplecms.FieldDefinition {
	cp := *f
	cp.Settings = copyMap(f.Settings)
	return &cp
}

func copyContentType(ct *simplecms.ContentType) *simplecms.ContentType {
	cp := *ct
	cp.Fields = make([]*simplecms.FieldDefinition, len(ct.Fields))
	for i, f := range ct.Fields {
		cp.Fields[i] = copyField(f)
	}
	return &cp
}

func copyContent(c *simplecms.Content) *simplecms.Content {
	cp := *c
	if c.PublishedAt != nil {
		t := *c.PublishedAt
		cp.PublishedAt = &t
	}
	cp.Fields = nil
	return &cp
}

func copyVersion(v *simplecms.ContentVersion) *simplecms.ContentVersion {
	cp := *v
	cp.Data = copyMap(v.Data)
	return &cp
}

func copyFieldValue(fv *simplecms.FieldValue) *simplecms.FieldValue {
	cp := *fv
	cp.Value = copyValue(fv.Value)
	return &cp
}

// copyValue deep-copies the JSON data held by json and array values.
func copyValue(v simplecms.Value) simplecms.Value {
	switch val := v.(type) {
	case simplecms.JSONValue:
		return simplecms.JSONValue{Data: copyJSON(val.Data)}
	case simplecms.ArrayValue:
		out := make(simplecms.ArrayValue, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = copyJSON(v)
	}
	return out
}

func copyJSON(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return copyMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyJSON(item)
		}
		return out
	default:
		return val
	}
}
