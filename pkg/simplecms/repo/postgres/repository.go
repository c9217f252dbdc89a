package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
}

// Repository implements simplecms.Repository using PostgreSQL. A Repository
// bound to a transaction also serves as the simplecms.Store for it.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simplecms.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplecms.Repository {
	return &Repository{db: pool}
}

// WithTx runs fn in a READ COMMITTED transaction. Row locks taken through
// LockContent serialize writers of the same entry.
func (r *Repository) WithTx(ctx context.Context, fn func(simplecms.Store) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return r.handlePostgresError("begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(&Repository{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return r.handlePostgresError("commit transaction", err)
	}
	return nil
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			switch pgErr.ConstraintName {
			case "content_types_name_key", "content_types_slug_key":
				return fmt.Errorf("%w: %s", simplecms.ErrDuplicateSchema, pgErr.Detail)
			case "contents_type_slug_key":
				return fmt.Errorf("%w: %s", simplecms.ErrDuplicateSlug, pgErr.Detail)
			case "content_versions_content_number_key":
				return fmt.Errorf("%w: %s", simplecms.ErrConcurrentVersionConflict, pgErr.Detail)
			case "field_definitions_type_key_key":
				return &simplecms.ValidationError{Field: "key", Message: "duplicate field key"}
			}
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			switch pgErr.ConstraintName {
			case "contents_content_type_id_fkey":
				if pgErr.TableName == "contents" && operation == "delete content type" {
					return simplecms.ErrDependentContentExists
				}
				return simplecms.ErrSchemaNotFound
			case "field_values_content_id_fkey", "content_versions_content_id_fkey":
				return simplecms.ErrContentNotFound
			case "field_values_field_id_fkey":
				return simplecms.ErrFieldNotFound
			}
			return fmt.Errorf("referenced record not found in %s: %s", operation, pgErr.ConstraintName)
		case "23514": // check_violation
			return &simplecms.ValidationError{Message: fmt.Sprintf("constraint %s violated", pgErr.ConstraintName)}
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s", simplecms.ErrConcurrentVersionConflict, pgErr.Message)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Content type operations

const contentTypeColumns = `id, name, slug, description, is_listable, default_status, created_at, updated_at`

func scanContentType(row pgx.Row) (*simplecms.ContentType, error) {
	var ct simplecms.ContentType
	err := row.Scan(&ct.ID, &ct.Name, &ct.Slug, &ct.Description, &ct.IsListable,
		&ct.DefaultStatus, &ct.CreatedAt, &ct.UpdatedAt)
	if err != nil {
		return nil, err
	}
	ct.Fields = []*simplecms.FieldDefinition{}
	return &ct, nil
}

func (r *Repository) loadFields(ctx context.Context, types ...*simplecms.ContentType) error {
	if len(types) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*simplecms.ContentType, len(types))
	ids := make([]uuid.UUID, 0, len(types))
	for _, ct := range types {
		byID[ct.ID] = ct
		ids = append(ids, ct.ID)
	}

	query := `
		SELECT id, content_type_id, key, name, type, required, display_order,
		       settings, created_at, updated_at
		FROM field_definitions
		WHERE content_type_id = ANY($1)
		ORDER BY display_order, key`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return r.handlePostgresError("load fields", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f simplecms.FieldDefinition
		var settings []byte
		if err := rows.Scan(&f.ID, &f.ContentTypeID, &f.Key, &f.Name, &f.Type, &f.Required,
			&f.DisplayOrder, &settings, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return r.handlePostgresError("scan field", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &f.Settings); err != nil {
				return fmt.Errorf("decode settings of field %s: %w", f.Key, err)
			}
		}
		if ct, ok := byID[f.ContentTypeID]; ok {
			ct.Fields = append(ct.Fields, &f)
		}
	}
	if err := rows.Err(); err != nil {
		return r.handlePostgresError("load fields", err)
	}
	return nil
}

func (r *Repository) GetContentType(ctx context.Context, id uuid.UUID) (*simplecms.ContentType, error) {
	query := `SELECT ` + contentTypeColumns + ` FROM content_types WHERE id = $1`
	ct, err := scanContentType(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplecms.ErrSchemaNotFound
		}
		return nil, r.handlePostgresError("get content type", err)
	}
	if err := r.loadFields(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (r *Repository) GetContentTypeBySlug(ctx context.Context, slug string) (*simplecms.ContentType, error) {
	query := `SELECT ` + contentTypeColumns + ` FROM content_types WHERE slug = $1`
	ct, err := scanContentType(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplecms.ErrSchemaNotFound
		}
		return nil, r.handlePostgresError("get content type by slug", err)
	}
	if err := r.loadFields(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (r *Repository) ListContentTypes(ctx context.Context) ([]*simplecms.ContentType, error) {
	query := `SELECT ` + contentTypeColumns + ` FROM content_types ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, r.handlePostgresError("list content types", err)
	}
	defer rows.Close()

	var types []*simplecms.ContentType
	for rows.Next() {
		ct, err := scanContentType(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan content type", err)
		}
		types = append(types, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list content types", err)
	}
	rows.Close()

	if err := r.loadFields(ctx, types...); err != nil {
		return nil, err
	}
	return types, nil
}

func (r *Repository) CountContentByType(ctx context.Context, contentTypeID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contents WHERE content_type_id = $1`, contentTypeID).Scan(&n)
	if err != nil {
		return 0, r.handlePostgresError("count content", err)
	}
	return n, nil
}

func (r *Repository) CreateContentType(ctx context.Context, ct *simplecms.ContentType) error {
	query := `
		INSERT INTO content_types (` + contentTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query, ct.ID, ct.Name, ct.Slug, ct.Description, ct.IsListable,
		ct.DefaultStatus, ct.CreatedAt, ct.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create content type", err)
	}
	for _, f := range ct.Fields {
		if err := r.CreateField(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) UpdateContentType(ctx context.Context, ct *simplecms.ContentType) error {
	query := `
		UPDATE content_types SET
			name = $2, slug = $3, description = $4, is_listable = $5,
			default_status = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, ct.ID, ct.Name, ct.Slug, ct.Description, ct.IsListable,
		ct.DefaultStatus, ct.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update content type", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrSchemaNotFound
	}
	return nil
}

func (r *Repository) DeleteContentType(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_types WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete content type", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrSchemaNotFound
	}
	return nil
}

func encodeSettings(settings map[string]interface{}) ([]byte, error) {
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return json.Marshal(settings)
}

func (r *Repository) CreateField(ctx context.Context, f *simplecms.FieldDefinition) error {
	settings, err := encodeSettings(f.Settings)
	if err != nil {
		return fmt.Errorf("encode settings of field %s: %w", f.Key, err)
	}
	query := `
		INSERT INTO field_definitions (
			id, content_type_id, key, name, type, required, display_order,
			settings, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.Exec(ctx, query, f.ID, f.ContentTypeID, f.Key, f.Name, f.Type, f.Required,
		f.DisplayOrder, settings, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create field", err)
	}
	return nil
}

func (r *Repository) UpdateField(ctx context.Context, f *simplecms.FieldDefinition) error {
	settings, err := encodeSettings(f.Settings)
	if err != nil {
		return fmt.Errorf("encode settings of field %s: %w", f.Key, err)
	}
	query := `
		UPDATE field_definitions SET
			name = $3, type = $4, required = $5, display_order = $6,
			settings = $7, updated_at = $8
		WHERE id = $1 AND content_type_id = $2`

	tag, err := r.db.Exec(ctx, query, f.ID, f.ContentTypeID, f.Name, f.Type, f.Required,
		f.DisplayOrder, settings, f.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update field", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrFieldNotFound
	}
	return nil
}

func (r *Repository) DeleteField(ctx context.Context, fieldID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM field_values WHERE field_id = $1`, fieldID); err != nil {
		return r.handlePostgresError("delete field values", err)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM field_definitions WHERE id = $1`, fieldID)
	if err != nil {
		return r.handlePostgresError("delete field", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrFieldNotFound
	}
	return nil
}

// Content operations

const contentColumns = `id, content_type_id, title, slug, status, published_at,
	created_by_id, updated_by_id, created_at, updated_at`

func scanContent(row pgx.Row) (*simplecms.Content, error) {
	var c simplecms.Content
	err := row.Scan(&c.ID, &c.ContentTypeID, &c.Title, &c.Slug, &c.Status, &c.PublishedAt,
		&c.CreatedByID, &c.UpdatedByID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) getContent(ctx context.Context, query, op string, id uuid.UUID) (*simplecms.Content, error) {
	c, err := scanContent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplecms.ErrContentNotFound
		}
		return nil, r.handlePostgresError(op, err)
	}
	return c, nil
}

func (r *Repository) GetContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	return r.getContent(ctx, `SELECT `+contentColumns+` FROM contents WHERE id = $1`, "get content", id)
}

// LockContent selects the entry row FOR UPDATE.
func (r *Repository) LockContent(ctx context.Context, id uuid.UUID) (*simplecms.Content, error) {
	return r.getContent(ctx, `SELECT `+contentColumns+` FROM contents WHERE id = $1 FOR UPDATE`, "lock content", id)
}

func (r *Repository) ListContent(ctx context.Context, params simplecms.ListContentParams) ([]*simplecms.Content, error) {
	where := "1=1"
	args := []interface{}{}
	argIndex := 1

	if params.ContentTypeID != nil {
		where += fmt.Sprintf(" AND content_type_id = $%d", argIndex)
		args = append(args, *params.ContentTypeID)
		argIndex++
	}
	if params.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *params.Status)
		argIndex++
	}

	query := `SELECT ` + contentColumns + ` FROM contents WHERE ` + where + ` ORDER BY created_at DESC, id`
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, params.Limit)
		argIndex++
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, params.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list content", err)
	}
	defer rows.Close()

	contents := []*simplecms.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, r.handlePostgresError("scan content", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list content", err)
	}
	return contents, nil
}

func (r *Repository) CreateContent(ctx context.Context, c *simplecms.Content) error {
	query := `
		INSERT INTO contents (` + contentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query, c.ID, c.ContentTypeID, c.Title, c.Slug, c.Status, c.PublishedAt,
		c.CreatedByID, c.UpdatedByID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create content", err)
	}
	return nil
}

func (r *Repository) UpdateContent(ctx context.Context, c *simplecms.Content) error {
	query := `
		UPDATE contents SET
			title = $2, slug = $3, status = $4, published_at = $5,
			updated_by_id = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, c.ID, c.Title, c.Slug, c.Status, c.PublishedAt,
		c.UpdatedByID, c.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update content", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrContentNotFound
	}
	return nil
}

func (r *Repository) DeleteContent(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete content", err)
	}
	if tag.RowsAffected() == 0 {
		return simplecms.ErrContentNotFound
	}
	return nil
}

// Field value operations

func (r *Repository) GetFieldValues(ctx context.Context, contentID uuid.UUID) ([]*simplecms.FieldValue, error) {
	query := `
		SELECT fv.id, fv.content_id, fv.field_id, fv.updated_by_id,
		       fv.text_value, fv.number_value, fv.boolean_value, fv.date_value,
		       fv.json_value, fv.media_id, fv.reference_id, fv.reference_type,
		       fv.created_at, fv.updated_at, fd.key, fd.type, fd.settings
		FROM field_values fv
		JOIN field_definitions fd ON fd.id = fv.field_id
		WHERE fv.content_id = $1
		ORDER BY fd.display_order, fd.key`

	rows, err := r.db.Query(ctx, query, contentID)
	if err != nil {
		return nil, r.handlePostgresError("get field values", err)
	}
	defer rows.Close()

	var values []*simplecms.FieldValue
	for rows.Next() {
		var fv simplecms.FieldValue
		var s simplecms.Slots
		var field simplecms.FieldDefinition
		var settings []byte
		if err := rows.Scan(&fv.ID, &fv.ContentID, &fv.FieldID, &fv.UpdatedByID,
			&s.Text, &s.Number, &s.Boolean, &s.Date, &s.JSON, &s.MediaID, &s.ReferenceID, &s.ReferenceType,
			&fv.CreatedAt, &fv.UpdatedAt, &field.Key, &field.Type, &settings); err != nil {
			return nil, r.handlePostgresError("scan field value", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &field.Settings); err != nil {
				return nil, fmt.Errorf("decode settings of field %s: %w", field.Key, err)
			}
		}
		v, err := simplecms.DecodeSlots(s, &field)
		if err != nil {
			return nil, fmt.Errorf("decode field %s: %w", field.Key, err)
		}
		fv.Value = v
		values = append(values, &fv)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("get field values", err)
	}
	return values, nil
}

// UpsertFieldValue writes every slot column on both insert and update so a
// previous slot never survives a type change.
func (r *Repository) UpsertFieldValue(ctx context.Context, fv *simplecms.FieldValue) error {
	s, err := simplecms.EncodeSlots(fv.Value)
	if err != nil {
		return &simplecms.ValidationError{Message: err.Error()}
	}
	query := `
		INSERT INTO field_values (
			id, content_id, field_id, updated_by_id,
			text_value, number_value, boolean_value, date_value,
			json_value, media_id, reference_id, reference_type,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT ON CONSTRAINT field_values_content_field_key DO UPDATE SET
			updated_by_id = EXCLUDED.updated_by_id,
			text_value = EXCLUDED.text_value,
			number_value = EXCLUDED.number_value,
			boolean_value = EXCLUDED.boolean_value,
			date_value = EXCLUDED.date_value,
			json_value = EXCLUDED.json_value,
			media_id = EXCLUDED.media_id,
			reference_id = EXCLUDED.reference_id,
			reference_type = EXCLUDED.reference_type,
			updated_at = EXCLUDED.updated_at`

	_, err = r.db.Exec(ctx, query, fv.ID, fv.ContentID, fv.FieldID, fv.UpdatedByID,
		s.Text, s.Number, s.Boolean, s.Date, jsonParam(s.JSON), s.MediaID, s.ReferenceID, s.ReferenceType,
		fv.CreatedAt, fv.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("upsert field value", err)
	}
	return nil
}

// jsonParam passes raw JSON as a string so pgx does not re-encode it; a nil
// slot is sent as NULL.
func jsonParam(b []byte) *string {
	if b == nil {
		return nil
	}
	s := string(b)
	return &s
}

func (r *Repository) DeleteFieldValue(ctx context.Context, contentID, fieldID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM field_values WHERE content_id = $1 AND field_id = $2`, contentID, fieldID)
	if err != nil {
		return r.handlePostgresError("delete field value", err)
	}
	return nil
}

func (r *Repository) DeleteFieldValues(ctx context.Context, contentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM field_values WHERE content_id = $1`, contentID)
	if err != nil {
		return r.handlePostgresError("delete field values", err)
	}
	return nil
}

// Version operations

const versionColumns = `id, content_id, version_number, title, status, data, created_by_id, notes, created_at`

func scanVersion(row pgx.Row) (*simplecms.ContentVersion, error) {
	var v simplecms.ContentVersion
	var data []byte
	if err := row.Scan(&v.ID, &v.ContentID, &v.VersionNumber, &v.Title, &v.Status, &data,
		&v.CreatedByID, &v.Notes, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.Data = map[string]interface{}{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &v.Data); err != nil {
			return nil, fmt.Errorf("decode version %d data: %w", v.VersionNumber, err)
		}
	}
	return &v, nil
}

func (r *Repository) ListVersions(ctx context.Context, contentID uuid.UUID) ([]*simplecms.ContentVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM content_versions WHERE content_id = $1 ORDER BY version_number`
	rows, err := r.db.Query(ctx, query, contentID)
	if err != nil {
		return nil, r.handlePostgresError("list versions", err)
	}
	defer rows.Close()

	versions := []*simplecms.ContentVersion{}
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list versions", err)
	}
	return versions, nil
}

func (r *Repository) GetVersion(ctx context.Context, contentID uuid.UUID, versionNumber int) (*simplecms.ContentVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM content_versions WHERE content_id = $1 AND version_number = $2`
	v, err := scanVersion(r.db.QueryRow(ctx, query, contentID, versionNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplecms.ErrVersionNotFound
		}
		return nil, r.handlePostgresError("get version", err)
	}
	return v, nil
}

func (r *Repository) MaxVersionNumber(ctx context.Context, contentID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM content_versions WHERE content_id = $1`,
		contentID).Scan(&n)
	if err != nil {
		return 0, r.handlePostgresError("max version number", err)
	}
	return n, nil
}

func (r *Repository) CreateVersion(ctx context.Context, v *simplecms.ContentVersion) error {
	data, err := json.Marshal(v.Data)
	if err != nil {
		return fmt.Errorf("encode version data: %w", err)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO content_versions (` + versionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query, v.ID, v.ContentID, v.VersionNumber, v.Title, v.Status,
		string(data), v.CreatedByID, v.Notes, v.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create version", err)
	}
	return nil
}

func (r *Repository) DeleteVersions(ctx context.Context, contentID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM content_versions WHERE content_id = $1`, contentID)
	if err != nil {
		return r.handlePostgresError("delete versions", err)
	}
	return nil
}
