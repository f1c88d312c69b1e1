package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRow is the storage shape: one row per document, JSON payload in a
// single column. The (collection, doc_id) pair is the document's identity.
type DocumentRow struct {
	ID         int    `gorm:"primary_key"`
	Collection string `gorm:"size:512;uniqueIndex:idx_collection_doc,priority:1;not null"`
	DocId      string `gorm:"size:64;uniqueIndex:idx_collection_doc,priority:2;not null"`
	Data       []byte `gorm:"type:json;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DocumentRow) TableName() string { return "documents" }

// SQLStore implements Store on MySQL via gorm.
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// MigrateTable creates the documents table. Called by the consuming service
// at startup, not by this package.
func (s *SQLStore) MigrateTable() error {
	return s.DB.AutoMigrate(&DocumentRow{})
}

func isDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}

func (s *SQLStore) GetDocument(ctx context.Context, collection, id string) (*Document, error) {
	var row DocumentRow
	err := s.DB.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rowToDocument(&row)
}

func (s *SQLStore) AddDocument(ctx context.Context, collection string, data map[string]any) (string, error) {
	id, _ := data["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	// Copy so the caller's map is not mutated by the id stamp.
	payload := make(map[string]any, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["id"] = id

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	row := DocumentRow{
		Collection: collection,
		DocId:      id,
		Data:       raw,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return "", fmt.Errorf("%s/%s: %w", collection, id, ErrAlreadyExists)
		}
		return "", err
	}
	return id, nil
}

// UpdateDocument merges fields into the stored JSON object. A nil field value
// writes JSON null (the "field cleared" convention of the status cleanup
// policy). Missing documents are an error; use AddDocument to create.
func (s *SQLStore) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DocumentRow
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_id = ?", collection, id).
			First(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var data map[string]any
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return fmt.Errorf("corrupt document %s/%s: %w", collection, id, err)
		}
		for k, v := range fields {
			data[k] = v
		}
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		return tx.Model(&DocumentRow{}).
			Where("id = ?", row.ID).
			Update("data", raw).Error
	})
}

func (s *SQLStore) GetCollection(ctx context.Context, collection string, filters ...Filter) ([]*Document, error) {
	q := s.DB.WithContext(ctx).Model(&DocumentRow{}).Where("collection = ?", collection)
	for _, f := range filters {
		cond, args, err := filterToSQL(f)
		if err != nil {
			return nil, err
		}
		q = q.Where(cond, args...)
	}

	var rows []DocumentRow
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*Document, 0, len(rows))
	for i := range rows {
		doc, err := rowToDocument(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// filterToSQL compiles one filter to a JSON_EXTRACT condition. Values are
// compared as JSON so booleans and numbers behave the same as in the
// document model, not as MySQL string coercions.
func filterToSQL(f Filter) (string, []any, error) {
	path := "$." + f.Field
	raw, err := json.Marshal(f.Value)
	if err != nil {
		return "", nil, err
	}
	switch f.Op {
	case OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
	default:
		return "", nil, fmt.Errorf("unsupported filter op %q", f.Op)
	}
	op := string(f.Op)
	if f.Op == OpEqual {
		op = "="
	}
	cond := fmt.Sprintf("JSON_EXTRACT(data, ?) %s CAST(? AS JSON)", op)
	return cond, []any{path, string(raw)}, nil
}

func rowToDocument(row *DocumentRow) (*Document, error) {
	var data map[string]any
	if err := json.Unmarshal(row.Data, &data); err != nil {
		return nil, fmt.Errorf("corrupt document %s/%s: %w", row.Collection, row.DocId, err)
	}
	return &Document{ID: row.DocId, Data: data}, nil
}
