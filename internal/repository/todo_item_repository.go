package repository

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo/internal/database"
	"todo/internal/model"
)

// ItemFilter narrows a page of items. SearchTerm is matched as given,
// callers normalize it first.
type ItemFilter struct {
	ListID     int64
	TagIDs     []int64
	SearchTerm string
	Visibility model.Visibility
	Offset     int
	Limit      int
}

type TodoItemRepository struct {
	db *gorm.DB
}

func NewTodoItemRepository(db *gorm.DB) *TodoItemRepository {
	return &TodoItemRepository{db: db}
}

// Create adds a new item to the database
func (r *TodoItemRepository) Create(ctx context.Context, item *model.TodoItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// GetByID retrieves an item. Soft-deleted rows are only found with model.IncludeDeleted.
func (r *TodoItemRepository) GetByID(ctx context.Context, id int64, v model.Visibility) (*model.TodoItem, error) {
	var item model.TodoItem
	result := r.db.WithContext(ctx).
		Scopes(visibility("todo_items", v)).
		First(&item, "todo_items.id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("TodoItem", id)
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *TodoItemRepository) Exists(ctx context.Context, id int64, v model.Visibility) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TodoItem{}).
		Scopes(visibility("todo_items", v)).
		Where("todo_items.id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// Update saves the item's own columns, leaving its tag links alone.
func (r *TodoItemRepository) Update(ctx context.Context, item *model.TodoItem) error {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Save(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("TodoItem", item.ID)
	}
	return nil
}

// MarkDeleted flags the given items as deleted at the given time.
func (r *TodoItemRepository) MarkDeleted(ctx context.Context, ids []int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&model.TodoItem{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"is_deleted": true, "deleted_at": at})
	return result.RowsAffected, result.Error
}

// Page returns one page of items matching f, ordered by title then id, along with
// the number of matching items across all pages.
func (r *TodoItemRepository) Page(ctx context.Context, f ItemFilter) ([]model.TodoItem, int64, error) {
	filter := r.itemFilter(f)

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.TodoItem{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := []model.TodoItem{}
	if total == 0 {
		return items, 0, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Order("todo_items.title ASC").
		Order("todo_items.id ASC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *TodoItemRepository) itemFilter(f ItemFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("todo_items.list_id = ?", f.ListID).
			Scopes(visibility("todo_items", f.Visibility))

		// Any of the selected tags is enough
		if len(f.TagIDs) > 0 {
			tagged := r.db.Model(&model.TodoItemTag{}).
				Select("todo_item_tags.todo_item_id").
				Where("todo_item_tags.tag_id IN ?", f.TagIDs)
			db = db.Where("todo_items.id IN (?)", tagged)
		}

		if f.SearchTerm != "" {
			lower := r.lowerFunc()
			like := "%" + escapeLike(f.SearchTerm) + "%"
			tagNamed := r.db.Model(&model.TodoItemTag{}).
				Select("todo_item_tags.todo_item_id").
				Joins("JOIN tags ON tags.id = todo_item_tags.tag_id").
				Where(lower+`(tags.name) LIKE ? ESCAPE '\'`, like)
			db = db.Where(
				`(`+lower+`(todo_items.title) LIKE ? ESCAPE '\' OR `+lower+`(todo_items.note) LIKE ? ESCAPE '\' OR todo_items.id IN (?))`,
				like, like, tagNamed,
			)
		}
		return db
	}
}

// lowerFunc names the SQL function that lowercases beyond ASCII.
func (r *TodoItemRepository) lowerFunc() string {
	if r.db.Dialector.Name() == database.DriverSQLite {
		return database.UnicodeLower
	}
	return "LOWER"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
