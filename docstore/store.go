// Package docstore defines the document-store collaborator the prop workflow
// runs against, plus the MySQL-backed implementation used in production.
//
// Collections are addressed by path, with subcollections separated by slashes
// (e.g. "todo_boards/{boardId}/lists/{listId}/cards"). A document is a JSON
// object; partial updates merge field-by-field, and a nil field value clears
// the field.
package docstore

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
)

// Op is a filter comparison operator.
type Op string

const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

// Document is one stored JSON object. ID duplicates the "id" field of Data
// for callers that only need the key.
type Document struct {
	ID   string
	Data map[string]any
}

// Store is the single-document-linearizable document store the workflow
// consumes. Collection queries (GetCollection) may lag writes; the workflow
// treats them as best-effort reads.
type Store interface {
	GetDocument(ctx context.Context, collection, id string) (*Document, error)
	AddDocument(ctx context.Context, collection string, data map[string]any) (string, error)
	UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error
	GetCollection(ctx context.Context, collection string, filters ...Filter) ([]*Document, error)
}
