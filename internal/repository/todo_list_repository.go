package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo/internal/model"
)

type TodoListRepository struct {
	db *gorm.DB
}

func NewTodoListRepository(db *gorm.DB) *TodoListRepository {
	return &TodoListRepository{db: db}
}

func (r *TodoListRepository) Create(ctx context.Context, list *model.TodoList) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(list).Error
}

// GetWithItems loads a list and its items. The same visibility applies to both.
func (r *TodoListRepository) GetWithItems(ctx context.Context, id int64, v model.Visibility) (*model.TodoList, error) {
	var list model.TodoList
	result := r.db.WithContext(ctx).
		Scopes(visibility("todo_lists", v)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(visibility("todo_items", v)).Order("todo_items.id ASC")
		}).
		First(&list, "todo_lists.id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("TodoList", id)
		}
		return nil, result.Error
	}
	return &list, nil
}

func (r *TodoListRepository) Exists(ctx context.Context, id int64, v model.Visibility) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TodoList{}).
		Scopes(visibility("todo_lists", v)).
		Where("todo_lists.id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// List returns lists ordered by title with their items and each item's tags.
func (r *TodoListRepository) List(ctx context.Context, v model.Visibility) ([]model.TodoList, error) {
	lists := []model.TodoList{}
	err := r.db.WithContext(ctx).
		Scopes(visibility("todo_lists", v)).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Scopes(visibility("todo_items", v)).Order("todo_items.title ASC").Order("todo_items.id ASC")
		}).
		Preload("Items.Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Order("todo_lists.title ASC").
		Order("todo_lists.id ASC").
		Find(&lists).Error
	return lists, err
}

// MarkDeleted flags a single list as deleted. Its items are handled by the caller.
func (r *TodoListRepository) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.TodoList{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_deleted": true, "deleted_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("TodoList", id)
	}
	return nil
}
