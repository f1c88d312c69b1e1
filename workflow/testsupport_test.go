package workflow

// DB-free test doubles. These validate the workflow semantics against the
// document-store contract; full MySQL-backed integration tests belong in an
// environment that can run docker (see docstore).

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmdatafocus/props_backend/config"
	"github.com/mmdatafocus/props_backend/docstore"
	"github.com/mmdatafocus/props_backend/models"
	"github.com/mmdatafocus/props_backend/utils"
)

type fakeStore struct {
	mu    sync.Mutex
	docs  map[string]map[string]map[string]any // collection -> id -> data
	order map[string][]string                  // collection -> insertion order
	seq   int

	// Failure hooks; nil means "never fail".
	GetErr    func(collection, id string) error
	AddErr    func(collection string, data map[string]any) error
	UpdateErr func(collection, id string) error
	QueryErr  func(collection string) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:  map[string]map[string]map[string]any{},
		order: map[string][]string{},
	}
}

// normalize round-trips any value through JSON so fake comparisons behave
// like the real store's decoded documents (numbers become float64 etc).
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func normalizeMap(data map[string]any) map[string]any {
	out := normalize(data)
	if out == nil {
		return map[string]any{}
	}
	return out.(map[string]any)
}

func (f *fakeStore) GetDocument(_ context.Context, collection, id string) (*docstore.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		if err := f.GetErr(collection, id); err != nil {
			return nil, err
		}
	}
	data, ok := f.docs[collection][id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return &docstore.Document{ID: id, Data: normalizeMap(data)}, nil
}

func (f *fakeStore) AddDocument(_ context.Context, collection string, data map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddErr != nil {
		if err := f.AddErr(collection, data); err != nil {
			return "", err
		}
	}
	id, _ := data["id"].(string)
	if id == "" {
		f.seq++
		id = fmt.Sprintf("doc-%d", f.seq)
	}
	stored := normalizeMap(data)
	stored["id"] = id
	if f.docs[collection] == nil {
		f.docs[collection] = map[string]map[string]any{}
	}
	f.docs[collection][id] = stored
	f.order[collection] = append(f.order[collection], id)
	return id, nil
}

func (f *fakeStore) UpdateDocument(_ context.Context, collection, id string, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		if err := f.UpdateErr(collection, id); err != nil {
			return err
		}
	}
	data, ok := f.docs[collection][id]
	if !ok {
		return docstore.ErrNotFound
	}
	for k, v := range normalizeMap(fields) {
		data[k] = v
	}
	return nil
}

func (f *fakeStore) GetCollection(_ context.Context, collection string, filters ...docstore.Filter) ([]*docstore.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.QueryErr != nil {
		if err := f.QueryErr(collection); err != nil {
			return nil, err
		}
	}
	var out []*docstore.Document
	for _, id := range f.order[collection] {
		data, ok := f.docs[collection][id]
		if !ok {
			continue
		}
		if !matchesFilters(data, filters) {
			continue
		}
		out = append(out, &docstore.Document{ID: id, Data: normalizeMap(data)})
	}
	return out, nil
}

func matchesFilters(data map[string]any, filters []docstore.Filter) bool {
	for _, f := range filters {
		got := normalize(data[f.Field])
		want := normalize(f.Value)
		switch f.Op {
		case docstore.OpEqual:
			if !reflect.DeepEqual(got, want) {
				return false
			}
		case docstore.OpNotEqual:
			if reflect.DeepEqual(got, want) {
				return false
			}
		default:
			panic(fmt.Sprintf("fakeStore: unsupported op %q", f.Op))
		}
	}
	return true
}

// count returns how many documents the collection holds.
func (f *fakeStore) count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs[collection])
}

func (f *fakeStore) get(t *testing.T, collection, id string) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.docs[collection][id]
	if !ok {
		t.Fatalf("document %s/%s not found", collection, id)
	}
	return data
}

// newTestWorkflow wires a StatusWorkflow with deterministic clock/ids and no
// redis/pubsub/media collaborators. NewId is called from the side-effect
// goroutines, so the counter is atomic.
func newTestWorkflow(store *fakeStore) *StatusWorkflow {
	var seq atomic.Int64
	return &StatusWorkflow{
		Store:  store,
		Logger: config.GetLogger(),
		Now:    func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) },
		NewId: func() string {
			return fmt.Sprintf("id-%d", seq.Add(1))
		},
	}
}

func seedDoc(t *testing.T, store *fakeStore, collection string, v any) string {
	t.Helper()
	data, err := utils.StructToDocData(v)
	if err != nil {
		t.Fatalf("encode seed doc: %v", err)
	}
	id, err := store.AddDocument(context.Background(), collection, data)
	if err != nil {
		t.Fatalf("seed %s: %v", collection, err)
	}
	return id
}

func seedProp(t *testing.T, store *fakeStore, prop models.Prop) string {
	t.Helper()
	return seedDoc(t, store, CollectionProps, prop)
}

func seedShow(t *testing.T, store *fakeStore, show models.Show) string {
	t.Helper()
	return seedDoc(t, store, CollectionShows, show)
}

// seedBoard creates a board with one list for the show and returns
// (boardId, listId).
func seedBoard(t *testing.T, store *fakeStore, showId string) (string, string) {
	t.Helper()
	boardId := seedDoc(t, store, CollectionTodoBoards, models.TodoBoard{ShowId: showId, Name: "Props"})
	listId := seedDoc(t, store, boardListsCollection(boardId), models.TodoList{Name: "To Do"})
	return boardId, listId
}
