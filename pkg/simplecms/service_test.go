package simplecms_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/access"
	"github.com/tendant/simple-cms/pkg/simplecms/cache"
	"github.com/tendant/simple-cms/pkg/simplecms/media"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	admin  = simplecms.Actor{ID: uuid.New(), Username: "admin", Role: access.RoleAdmin}
	editor = simplecms.Actor{ID: uuid.New(), Username: "editor", Role: access.RoleEditor}
	author = simplecms.Actor{ID: uuid.New(), Username: "author", Role: access.RoleAuthor}
	viewer = simplecms.Actor{ID: uuid.New(), Username: "viewer", Role: access.RoleViewer}
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []simplecms.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []simplecms.Option{},
			expectError: true,
		},
		{
			name: "repository without guard should fail",
			options: []simplecms.Option{
				simplecms.WithRepository(memory.New()),
			},
			expectError: true,
		},
		{
			name: "guard without repository should fail",
			options: []simplecms.Option{
				simplecms.WithAccessGuard(access.AllowAll{}),
			},
			expectError: true,
		},
		{
			name: "repository and guard should succeed",
			options: []simplecms.Option{
				simplecms.WithRepository(memory.New()),
				simplecms.WithAccessGuard(access.NewGuard(nil)),
			},
			expectError: false,
		},
		{
			name: "all options should succeed",
			options: []simplecms.Option{
				simplecms.WithRepository(memory.New()),
				simplecms.WithAccessGuard(access.NewGuard(nil)),
				simplecms.WithEventSink(simplecms.NewNoopEventSink()),
				simplecms.WithSchemaCache(cache.NewMemory(0)),
				simplecms.WithMediaResolver(media.NewMemory()),
				simplecms.WithHooks(&simplecms.Hooks{}),
				simplecms.WithLogger(zap.NewNop()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := simplecms.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T, opts ...simplecms.Option) (simplecms.Service, simplecms.Repository) {
	t.Helper()

	repo := memory.New()
	options := append([]simplecms.Option{
		simplecms.WithRepository(repo),
		simplecms.WithAccessGuard(access.NewGuard(nil)),
	}, opts...)
	svc, err := simplecms.New(options...)
	require.NoError(t, err)
	return svc, repo
}

func defineReport(t *testing.T, svc simplecms.Service) *simplecms.ContentType {
	t.Helper()

	ct, err := svc.DefineContentType(context.Background(), admin, simplecms.DefineContentTypeRequest{
		Name:       "Report",
		IsListable: true,
		Fields: []simplecms.FieldSpec{
			{Key: "title", Name: "Title", Type: simplecms.FieldTypeText, Required: true},
			{Key: "score", Name: "Score", Type: simplecms.FieldTypeNumber},
		},
	})
	require.NoError(t, err)
	return ct
}

func TestDefineContentType(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)

	ct := defineReport(t, svc)
	assert.Equal(t, "report", ct.Slug)
	assert.Equal(t, simplecms.ContentStatusDraft, ct.DefaultStatus)
	require.Len(t, ct.Fields, 2)
	assert.Equal(t, "title", ct.Fields[0].Key)
	assert.Equal(t, 0, ct.Fields[0].DisplayOrder)
	assert.Equal(t, 1, ct.Fields[1].DisplayOrder)

	got, err := svc.GetContentTypeBySlug(ctx, "report")
	require.NoError(t, err)
	assert.Equal(t, ct.ID, got.ID)

	tests := []struct {
		name    string
		actor   simplecms.Actor
		req     simplecms.DefineContentTypeRequest
		wantErr error
	}{
		{"duplicate name", admin, simplecms.DefineContentTypeRequest{Name: "Report", Slug: "other"}, simplecms.ErrDuplicateSchema},
		{"duplicate slug", admin, simplecms.DefineContentTypeRequest{Name: "Other", Slug: "report"}, simplecms.ErrDuplicateSchema},
		{"missing name", admin, simplecms.DefineContentTypeRequest{}, simplecms.ErrValidation},
		{"bad slug", admin, simplecms.DefineContentTypeRequest{Name: "X", Slug: "Bad Slug"}, simplecms.ErrValidation},
		{"bad default status", admin, simplecms.DefineContentTypeRequest{Name: "X", DefaultStatus: "live"}, simplecms.ErrValidation},
		{"bad field key", admin, simplecms.DefineContentTypeRequest{Name: "X", Fields: []simplecms.FieldSpec{{Key: "Bad", Type: "text"}}}, simplecms.ErrValidation},
		{"editor denied", editor, simplecms.DefineContentTypeRequest{Name: "Y"}, simplecms.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.DefineContentType(ctx, tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			var se *simplecms.SchemaError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func TestUpdateContentType(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	name := "Quarterly Report"
	slug := "quarterly"
	listable := false
	updated, err := svc.UpdateContentType(ctx, admin, simplecms.UpdateContentTypeRequest{
		ID: ct.ID, Name: &name, Slug: &slug, IsListable: &listable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Report", updated.Name)
	assert.Equal(t, "quarterly", updated.Slug)
	assert.False(t, updated.IsListable)

	_, err = svc.GetContentTypeBySlug(ctx, "report")
	assert.ErrorIs(t, err, simplecms.ErrSchemaNotFound)

	_, err = svc.UpdateContentType(ctx, admin, simplecms.UpdateContentTypeRequest{ID: uuid.New(), Name: &name})
	assert.ErrorIs(t, err, simplecms.ErrSchemaNotFound)
}

func TestFieldOperations(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	field, err := svc.AddField(ctx, admin, ct.ID, simplecms.FieldSpec{Key: "summary", Name: "Summary", Type: simplecms.FieldTypeTextarea})
	require.NoError(t, err)
	assert.Equal(t, 2, field.DisplayOrder)

	_, err = svc.AddField(ctx, admin, ct.ID, simplecms.FieldSpec{Key: "summary", Type: simplecms.FieldTypeText})
	assert.ErrorIs(t, err, simplecms.ErrValidation)

	required := true
	updated, err := svc.UpdateField(ctx, admin, simplecms.UpdateFieldRequest{
		ContentTypeID: ct.ID, FieldID: field.ID, Required: &required,
	})
	require.NoError(t, err)
	assert.True(t, updated.Required)
	assert.Equal(t, "summary", updated.Key)

	_, err = svc.UpdateField(ctx, admin, simplecms.UpdateFieldRequest{ContentTypeID: ct.ID, FieldID: uuid.New()})
	assert.ErrorIs(t, err, simplecms.ErrFieldNotFound)
	assert.ErrorIs(t, err, simplecms.ErrNotFound)

	require.NoError(t, svc.RemoveField(ctx, admin, ct.ID, field.ID))
	got, err := svc.GetContentType(ctx, ct.ID)
	require.NoError(t, err)
	_, ok := got.Field("summary")
	assert.False(t, ok)

	assert.ErrorIs(t, svc.RemoveField(ctx, admin, ct.ID, field.ID), simplecms.ErrFieldNotFound)
}

func TestCreateContent(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, author, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID,
		Title:         "Q1 Report",
		Fields:        map[string]interface{}{"title": "Q1 Report", "score": "42", "unknown": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "q1-report", content.Slug)
	assert.Equal(t, simplecms.ContentStatusDraft, content.Status)
	assert.Nil(t, content.PublishedAt)
	assert.Equal(t, author.ID, content.CreatedByID)
	assert.Equal(t, map[string]interface{}{"title": "Q1 Report", "score": float64(42)}, content.Fields)

	tests := []struct {
		name    string
		actor   simplecms.Actor
		req     simplecms.CreateContentRequest
		wantErr error
	}{
		{"duplicate slug", author, simplecms.CreateContentRequest{ContentTypeID: ct.ID, Title: "Q1 Report", Fields: map[string]interface{}{"title": "x"}}, simplecms.ErrDuplicateSlug},
		{"missing title", author, simplecms.CreateContentRequest{ContentTypeID: ct.ID, Fields: map[string]interface{}{"title": "x"}}, simplecms.ErrValidation},
		{"missing required", author, simplecms.CreateContentRequest{ContentTypeID: ct.ID, Title: "Q2"}, simplecms.ErrValidation},
		{"malformed number", author, simplecms.CreateContentRequest{ContentTypeID: ct.ID, Title: "Q3", Fields: map[string]interface{}{"title": "x", "score": "lots"}}, simplecms.ErrValidation},
		{"bad status", author, simplecms.CreateContentRequest{ContentTypeID: ct.ID, Title: "Q4", Status: "live", Fields: map[string]interface{}{"title": "x"}}, simplecms.ErrValidation},
		{"unknown type", author, simplecms.CreateContentRequest{ContentTypeID: uuid.New(), Title: "Q5"}, simplecms.ErrSchemaNotFound},
		{"viewer denied", viewer, simplecms.CreateContentRequest{ContentTypeID: ct.ID, Title: "Q6", Fields: map[string]interface{}{"title": "x"}}, simplecms.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateContent(ctx, tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("published on create", func(t *testing.T) {
		c, err := svc.CreateContent(ctx, editor, simplecms.CreateContentRequest{
			ContentTypeID: ct.ID, Title: "Live", Status: simplecms.ContentStatusPublished,
			Fields: map[string]interface{}{"title": "Live"},
		})
		require.NoError(t, err)
		assert.NotNil(t, c.PublishedAt)
	})
}

func TestUpdateContentOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, author, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Mine", Fields: map[string]interface{}{"title": "Mine"},
	})
	require.NoError(t, err)

	title := "Still mine"
	_, err = svc.UpdateContent(ctx, author, simplecms.UpdateContentRequest{ID: content.ID, Title: &title})
	assert.NoError(t, err)

	other := simplecms.Actor{ID: uuid.New(), Username: "other", Role: access.RoleAuthor}
	_, err = svc.UpdateContent(ctx, other, simplecms.UpdateContentRequest{ID: content.ID, Title: &title})
	var pd *simplecms.PermissionDeniedError
	require.ErrorAs(t, err, &pd)
	assert.Equal(t, simplecms.CapEditAnyContent, pd.Capability)

	_, err = svc.UpdateContent(ctx, editor, simplecms.UpdateContentRequest{ID: content.ID, Title: &title})
	assert.NoError(t, err)

	_, err = svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{ID: uuid.New(), Title: &title})
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)
}

func TestUpdateContentFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Report", Fields: map[string]interface{}{"title": "Report", "score": 1},
	})
	require.NoError(t, err)

	_, err = svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{
		ID: content.ID, Fields: map[string]interface{}{"title": ""},
	})
	assert.ErrorIs(t, err, simplecms.ErrValidation)

	updated, err := svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{
		ID: content.ID, Fields: map[string]interface{}{"score": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, "Report", updated.Fields["title"])
	assert.Nil(t, updated.Fields["score"])

	versions, err := svc.ListVersions(ctx, content.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2, "failed update does not append a version")
	assert.Equal(t, "Updated by admin", versions[1].Notes)
}

func TestDeleteContent(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupTestService(t)
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, author, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Gone", Fields: map[string]interface{}{"title": "Gone"},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteContent(ctx, author, content.ID), simplecms.ErrPermissionDenied)
	require.NoError(t, svc.DeleteContent(ctx, editor, content.ID))

	_, err = svc.GetContent(ctx, content.ID)
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)

	versions, err := repo.ListVersions(ctx, content.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
	values, err := repo.GetFieldValues(ctx, content.ID)
	require.NoError(t, err)
	assert.Empty(t, values)

	assert.ErrorIs(t, svc.DeleteContent(ctx, editor, content.ID), simplecms.ErrNotFound)
}

func TestListContent(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
			ContentTypeID: ct.ID, Title: title, Fields: map[string]interface{}{"title": title},
		})
		require.NoError(t, err)
	}

	all, err := svc.ListContent(ctx, simplecms.ListContentParams{ContentTypeID: &ct.ID})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := svc.ListContent(ctx, simplecms.ListContentParams{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	published, err := svc.ListContent(ctx, simplecms.ListContentParams{Status: simplecms.StatusPtr(simplecms.ContentStatusPublished)})
	require.NoError(t, err)
	assert.Empty(t, published)

	_, err = svc.ListContent(ctx, simplecms.ListContentParams{Limit: -1})
	assert.ErrorIs(t, err, simplecms.ErrValidation)
}

func TestMediaValidation(t *testing.T) {
	ctx := context.Background()
	resolver := media.NewMemory("img-1")
	svc, _ := setupTestService(t, simplecms.WithMediaResolver(resolver))

	ct, err := svc.DefineContentType(ctx, admin, simplecms.DefineContentTypeRequest{
		Name:   "Gallery",
		Fields: []simplecms.FieldSpec{{Key: "cover", Name: "Cover", Type: simplecms.FieldTypeMedia}},
	})
	require.NoError(t, err)

	_, err = svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Ok", Fields: map[string]interface{}{"cover": "img-1"},
	})
	assert.NoError(t, err)

	_, err = svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Missing", Fields: map[string]interface{}{"cover": "img-2"},
	})
	var ve *simplecms.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cover", ve.Field)
}

type recordingSink struct {
	simplecms.NoopEventSink
	mu     sync.Mutex
	events []string
	fail   bool
}

func (r *recordingSink) record(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
	if r.fail {
		return errors.New("sink unavailable")
	}
	return nil
}

func (r *recordingSink) ContentCreated(ctx context.Context, c *simplecms.Content, v *simplecms.ContentVersion) error {
	return r.record("created")
}

func (r *recordingSink) ContentUpdated(ctx context.Context, c *simplecms.Content, v *simplecms.ContentVersion) error {
	return r.record("updated")
}

func (r *recordingSink) ContentPublished(ctx context.Context, c *simplecms.Content, v *simplecms.ContentVersion) error {
	return r.record("published")
}

func (r *recordingSink) ContentDeleted(ctx context.Context, id uuid.UUID) error {
	return r.record("deleted")
}

func TestEventsAndHooks(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{fail: true}
	core, logs := observer.New(zap.WarnLevel)

	var statusChanges []simplecms.ContentStatus
	var versionsSeen []int
	hooks := &simplecms.Hooks{
		BeforeContentCreate: []simplecms.BeforeContentCreateHook{
			simplecms.ValidationHook(func(req *simplecms.CreateContentRequest) error {
				if req.Title == "forbidden" {
					return errors.New("title not allowed")
				}
				return nil
			}),
		},
		AfterVersionCreate: []simplecms.AfterVersionCreateHook{
			func(hctx *simplecms.HookContext, v *simplecms.ContentVersion) error {
				versionsSeen = append(versionsSeen, v.VersionNumber)
				return nil
			},
		},
		OnStatusChange: []simplecms.StatusChangeHook{
			func(hctx *simplecms.HookContext, id uuid.UUID, from, to simplecms.ContentStatus) error {
				statusChanges = append(statusChanges, to)
				return nil
			},
		},
	}

	svc, _ := setupTestService(t,
		simplecms.WithEventSink(sink),
		simplecms.WithHooks(hooks),
		simplecms.WithLogger(zap.New(core)),
	)
	ct := defineReport(t, svc)

	_, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "forbidden", Fields: map[string]interface{}{"title": "x"},
	})
	assert.EqualError(t, errors.Unwrap(err), "title not allowed")

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Allowed", Fields: map[string]interface{}{"title": "x"},
	})
	require.NoError(t, err, "sink failures do not fail the operation")

	_, err = svc.PublishVersion(ctx, admin, content.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"created", "published"}, sink.events)
	assert.Equal(t, []int{1, 2}, versionsSeen)
	assert.Equal(t, []simplecms.ContentStatus{simplecms.ContentStatusPublished}, statusChanges)
	assert.Equal(t, 2, logs.FilterMessage("event sink failed").Len())
}

func TestSchemaCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	schemaCache := cache.NewMemory(0)
	svc, _ := setupTestService(t, simplecms.WithSchemaCache(schemaCache))
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Cached", Fields: map[string]interface{}{"title": "x"},
	})
	require.NoError(t, err)

	_, err = svc.GetContent(ctx, content.ID, simplecms.WithFields())
	require.NoError(t, err)
	assert.Equal(t, 1, schemaCache.Len())

	_, err = svc.AddField(ctx, admin, ct.ID, simplecms.FieldSpec{Key: "extra", Name: "Extra", Type: simplecms.FieldTypeText})
	require.NoError(t, err)
	assert.Equal(t, 0, schemaCache.Len())

	got, err := svc.GetContent(ctx, content.ID, simplecms.WithFields())
	require.NoError(t, err)
	assert.Contains(t, got.Fields, "extra")
}

func TestGetContentDetails(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Details", Fields: map[string]interface{}{"title": "x"},
	})
	require.NoError(t, err)

	published, err := simplecms.PublishLatest(ctx, svc, admin, content.ID)
	require.NoError(t, err)
	assert.Equal(t, simplecms.ContentStatusPublished, published.Status)

	details, err := simplecms.GetContentDetails(ctx, svc, content.ID)
	require.NoError(t, err)
	assert.Equal(t, ct.ID, details.ContentType.ID)
	require.Len(t, details.Versions, 2)
	assert.Equal(t, 2, details.Latest().VersionNumber)
}

type counters struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *counters) IncrementCounter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[name]++
}

func TestMetricsAndLoggingHooks(t *testing.T) {
	ctx := context.Background()
	metrics := &counters{}
	core, logs := observer.New(zap.InfoLevel)

	svc, _ := setupTestService(t,
		simplecms.WithHooks(simplecms.MetricsHook(metrics)),
		simplecms.WithHooks(simplecms.LoggingHook(zap.New(core))),
	)
	ct := defineReport(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID, Title: "Counted", Fields: map[string]interface{}{"title": "x"},
	})
	require.NoError(t, err)
	_, err = svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{
		ID: content.ID, Fields: map[string]interface{}{"score": 2},
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteContent(ctx, admin, content.ID))

	assert.Equal(t, map[string]int{
		"content.created":         1,
		"content.version_created": 2,
		"content.deleted":         1,
	}, metrics.counts)
	assert.Equal(t, 2, logs.FilterMessage("version appended").Len())
	assert.Equal(t, 1, logs.FilterMessage("content deleted").Len())
}

func TestGetContentFieldsAreDetached(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestService(t)

	ct, err := svc.DefineContentType(ctx, admin, simplecms.DefineContentTypeRequest{
		Name: "Place",
		Fields: []simplecms.FieldSpec{
			{Key: "meta", Name: "Meta", Type: simplecms.FieldType("geo")},
		},
	})
	require.NoError(t, err)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID,
		Title:         "Harbor",
		Fields:        map[string]interface{}{"meta": map[string]interface{}{"lat": 1.5}},
	})
	require.NoError(t, err)

	got, err := svc.GetContent(ctx, content.ID, simplecms.WithFields())
	require.NoError(t, err)
	got.Fields["meta"].(map[string]interface{})["lat"] = 99.0

	again, err := svc.GetContent(ctx, content.ID, simplecms.WithFields())
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"lat": 1.5}, again.Fields["meta"])

	_, err = svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{
		ID: content.ID, Title: simplecms.StringPtr("Harbor North"),
	})
	require.NoError(t, err)
	v2, err := svc.GetVersion(ctx, content.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"lat": 1.5}, v2.Data["meta"])
}
