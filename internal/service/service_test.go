package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"todo/internal/database"
	"todo/internal/model"
	"todo/internal/repository"
	"todo/internal/service"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type recordingNotifier struct {
	mu        sync.Mutex
	completed []model.ItemCompleted
	deleted   map[string]int
}

func (n *recordingNotifier) ItemCompleted(_ context.Context, e model.ItemCompleted) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, e)
}

func (n *recordingNotifier) SoftDeleted(_ context.Context, entity string, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.deleted == nil {
		n.deleted = map[string]int{}
	}
	n.deleted[entity] += count
}

type fixture struct {
	store    *repository.Store
	notifier *recordingNotifier
	tags     *service.TagService
	itemTags *service.ItemTagService
	todos    *service.TodoService
	queries  *service.ItemQueryService
	deletes  *service.SoftDeleteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "todo.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repository.NewStore(db)
	notifier := &recordingNotifier{}
	opts := service.Options{
		Now:          func() time.Time { return fixedNow },
		Notifier:     notifier,
		ColourPolicy: model.PaletteColours{},
	}
	return &fixture{
		store:    store,
		notifier: notifier,
		tags:     service.NewTagService(store),
		itemTags: service.NewItemTagService(store),
		todos:    service.NewTodoService(store, opts),
		queries:  service.NewItemQueryService(store),
		deletes:  service.NewSoftDeleteService(store, opts),
	}
}

func (f *fixture) list(t *testing.T, title string) int64 {
	t.Helper()
	id, err := f.todos.CreateList(context.Background(), title, "")
	require.NoError(t, err)
	return id
}

func (f *fixture) item(t *testing.T, listID int64, title string) int64 {
	t.Helper()
	id, err := f.todos.CreateItem(context.Background(), listID, title)
	require.NoError(t, err)
	return id
}

func (f *fixture) tag(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.tags.CreateTag(context.Background(), name, "")
	require.NoError(t, err)
	return id
}

func (f *fixture) tagIDs(t *testing.T, itemID int64) []int64 {
	t.Helper()
	ids, err := f.store.ItemTags.TagIDs(context.Background(), itemID)
	require.NoError(t, err)
	return ids
}

func (f *fixture) stored(t *testing.T, itemID int64) *model.TodoItem {
	t.Helper()
	item, err := f.store.Items.GetByID(context.Background(), itemID, model.IncludeDeleted)
	require.NoError(t, err)
	return item
}
