//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/access"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/postgres"
)

var admin = simplecms.Actor{ID: uuid.New(), Username: "admin", Role: access.RoleAdmin}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("cms"),
		tcpostgres.WithUsername("cms"),
		tcpostgres.WithPassword("cms"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func setupService(t *testing.T) (simplecms.Service, simplecms.Repository) {
	t.Helper()
	repo := postgres.NewWithPool(setupTestDB(t))
	svc, err := simplecms.New(
		simplecms.WithRepository(repo),
		simplecms.WithAccessGuard(access.NewGuard(nil)),
	)
	require.NoError(t, err)
	return svc, repo
}

func defineArticle(t *testing.T, svc simplecms.Service) *simplecms.ContentType {
	t.Helper()
	ct, err := svc.DefineContentType(context.Background(), admin, simplecms.DefineContentTypeRequest{
		Name:       "Article",
		IsListable: true,
		Fields: []simplecms.FieldSpec{
			{Key: "body", Name: "Body", Type: simplecms.FieldTypeRichText, Required: true},
			{Key: "score", Name: "Score", Type: simplecms.FieldTypeNumber},
			{Key: "tags", Name: "Tags", Type: simplecms.FieldType("json")},
		},
	})
	require.NoError(t, err)
	return ct
}

func TestPostgresMigrations(t *testing.T) {
	ctx := context.Background()
	pool := setupTestDB(t)

	version, err := postgres.MigrationVersion(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, postgres.MigrateDown(ctx, pool))
	version, err = postgres.MigrationVersion(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, postgres.Migrate(ctx, pool))
}

func TestPostgresContentLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(t)
	ct := defineArticle(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID,
		Title:         "Hello Postgres",
		Fields: map[string]interface{}{
			"body":  "<p>first</p>",
			"score": "4.5",
			"tags":  []interface{}{"a", "b"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-postgres", content.Slug)
	assert.Equal(t, simplecms.ContentStatusDraft, content.Status)

	got, err := svc.GetContent(ctx, content.ID, simplecms.WithFields())
	require.NoError(t, err)
	assert.Equal(t, "<p>first</p>", got.Fields["body"])
	assert.Equal(t, 4.5, got.Fields["score"])
	assert.Equal(t, []interface{}{"a", "b"}, got.Fields["tags"])

	_, err = svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{
		ID:     content.ID,
		Fields: map[string]interface{}{"body": "<p>second</p>", "score": nil},
	})
	require.NoError(t, err)

	cmp, err := svc.CompareVersions(ctx, content.ID, 1, 2)
	require.NoError(t, err)
	changed := map[string]bool{}
	for _, d := range cmp.Fields {
		changed[d.FieldKey] = d.Changed
	}
	assert.True(t, changed["body"])
	assert.True(t, changed["score"])
	assert.False(t, changed["tags"])

	published, err := svc.PublishVersion(ctx, admin, content.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, simplecms.ContentStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	restored, err := svc.RestoreVersion(ctx, admin, content.ID, 1)
	require.NoError(t, err)
	got, err = svc.GetContent(ctx, restored.ID, simplecms.WithFields())
	require.NoError(t, err)
	assert.Equal(t, "<p>first</p>", got.Fields["body"])
	assert.Equal(t, 4.5, got.Fields["score"])

	versions, err := svc.ListVersions(ctx, content.ID)
	require.NoError(t, err)
	require.Len(t, versions, 4)
	for i, v := range versions {
		assert.Equal(t, i+1, v.VersionNumber)
	}
	assert.Equal(t, simplecms.NoteInitialVersion, versions[0].Notes)

	err = svc.DeleteContentType(ctx, admin, ct.ID)
	assert.ErrorIs(t, err, simplecms.ErrDependentContentExists)

	require.NoError(t, svc.DeleteContent(ctx, admin, content.ID))
	_, err = repo.GetContent(ctx, content.ID)
	assert.ErrorIs(t, err, simplecms.ErrContentNotFound)
	versions, err = repo.ListVersions(ctx, content.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)

	require.NoError(t, svc.DeleteContentType(ctx, admin, ct.ID))
}

func TestPostgresDuplicateVersion(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupService(t)
	ct := defineArticle(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID,
		Title:         "Dup",
		Fields:        map[string]interface{}{"body": "x"},
	})
	require.NoError(t, err)

	err = repo.WithTx(ctx, func(tx simplecms.Store) error {
		return tx.CreateVersion(ctx, &simplecms.ContentVersion{
			ID: uuid.New(), ContentID: content.ID, VersionNumber: 1,
			Title: "Dup", Status: simplecms.ContentStatusDraft,
			Data: map[string]interface{}{}, CreatedAt: time.Now().UTC(),
		})
	})
	assert.ErrorIs(t, err, simplecms.ErrConcurrentVersionConflict)
}

func TestPostgresConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	ct := defineArticle(t, svc)

	content, err := svc.CreateContent(ctx, admin, simplecms.CreateContentRequest{
		ContentTypeID: ct.ID,
		Title:         "Busy",
		Fields:        map[string]interface{}{"body": "start"},
	})
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.UpdateContent(ctx, admin, simplecms.UpdateContentRequest{
				ID:     content.ID,
				Fields: map[string]interface{}{"score": float64(i)},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	versions, err := svc.ListVersions(ctx, content.ID)
	require.NoError(t, err)
	require.Len(t, versions, writers+1)
	for i, v := range versions {
		assert.Equal(t, i+1, v.VersionNumber)
	}
}
