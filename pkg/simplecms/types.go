package simplecms

import (
	"time"

	"github.com/google/uuid"
)

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// FieldType is the declared type of a field definition.
type FieldType string

// Field type constants (typed). Any other non-empty type is accepted and
// stored as JSON.
const (
	FieldTypeText      FieldType = "text"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeRichText  FieldType = "rich_text"
	FieldTypeNumber    FieldType = "number"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeDate      FieldType = "date"
	FieldTypeDatetime  FieldType = "datetime"
	FieldTypeSelect    FieldType = "select"
	FieldTypeMedia     FieldType = "media"
	FieldTypeReference FieldType = "reference"
)

// Version notes written by the versioning engine.
const (
	NoteInitialVersion = "Initial version"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// ContentType is a runtime-defined schema for a class of entries.
type ContentType struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description,omitempty"`
	IsListable    bool               `json:"is_listable"`
	DefaultStatus ContentStatus      `json:"default_status"`
	Fields        []*FieldDefinition `json:"fields"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Field returns the field definition with the given key.
func (ct *ContentType) Field(key string) (*FieldDefinition, bool) {
	for _, f := range ct.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return nil, false
}

// FieldDefinition is one named, typed attribute declared by a content type.
type FieldDefinition struct {
	ID            uuid.UUID              `json:"id"`
	ContentTypeID uuid.UUID              `json:"content_type_id"`
	Key           string                 `json:"key"`
	Name          string                 `json:"name"`
	Type          FieldType              `json:"type"`
	Required      bool                   `json:"required"`
	DisplayOrder  int                    `json:"display_order"`
	Settings      map[string]interface{} `json:"settings,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// Multiple reports whether the field accepts a list of values.
func (f *FieldDefinition) Multiple() bool {
	if f.Settings == nil {
		return false
	}
	v, ok := f.Settings["multiple"].(bool)
	return ok && v
}

// Content is an entry of a content type.
//
// Fields is only populated when requested with WithFields.
type Content struct {
	ID            uuid.UUID              `json:"id"`
	ContentTypeID uuid.UUID              `json:"content_type_id"`
	Title         string                 `json:"title"`
	Slug          string                 `json:"slug"`
	Status        ContentStatus          `json:"status"`
	PublishedAt   *time.Time             `json:"published_at,omitempty"`
	CreatedByID   uuid.UUID              `json:"created_by_id"`
	UpdatedByID   uuid.UUID              `json:"updated_by_id"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Fields        map[string]interface{} `json:"fields,omitempty"`
}

// FieldValue is one typed attribute value of one entry.
type FieldValue struct {
	ID          uuid.UUID `json:"id"`
	ContentID   uuid.UUID `json:"content_id"`
	FieldID     uuid.UUID `json:"field_id"`
	UpdatedByID uuid.UUID `json:"updated_by_id"`
	Value       Value     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContentVersion is an immutable snapshot of an entry.
type ContentVersion struct {
	ID            uuid.UUID              `json:"id"`
	ContentID     uuid.UUID              `json:"content_id"`
	VersionNumber int                    `json:"version_number"`
	Title         string                 `json:"title"`
	Status        ContentStatus          `json:"status"`
	Data          map[string]interface{} `json:"data"`
	CreatedByID   uuid.UUID              `json:"created_by_id"`
	Notes         string                 `json:"notes"`
	CreatedAt     time.Time              `json:"created_at"`
}

// FieldDiff describes one field's values in two snapshots.
type FieldDiff struct {
	FieldKey  string      `json:"field_key"`
	FieldName string      `json:"field_name"`
	ValueA    interface{} `json:"value_a"`
	ValueB    interface{} `json:"value_b"`
	Changed   bool        `json:"changed"`
}

// VersionComparison is the result of comparing two versions of an entry.
type VersionComparison struct {
	ContentID uuid.UUID     `json:"content_id"`
	VersionA  int           `json:"version_a"`
	VersionB  int           `json:"version_b"`
	TitleA    string        `json:"title_a"`
	TitleB    string        `json:"title_b"`
	StatusA   ContentStatus `json:"status_a"`
	StatusB   ContentStatus `json:"status_b"`
	Fields    []FieldDiff   `json:"fields"`
}
