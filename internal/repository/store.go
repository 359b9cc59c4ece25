package repository

import (
	"context"

	"gorm.io/gorm"

	"todo/internal/model"
)

// Store groups the repositories that share one connection or one transaction.
type Store struct {
	db *gorm.DB

	Tags     *TagRepository
	ItemTags *ItemTagRepository
	Items    *TodoItemRepository
	Lists    *TodoListRepository
	Users    *UserRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		Tags:     NewTagRepository(db),
		ItemTags: NewItemTagRepository(db),
		Items:    NewTodoItemRepository(db),
		Lists:    NewTodoListRepository(db),
		Users:    NewUserRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single transaction.
// Any error returned by fn rolls the whole unit back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// visibility keeps soft-deleted rows of table out of the result unless asked for.
func visibility(table string, v model.Visibility) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v == model.IncludeDeleted {
			return db
		}
		return db.Where(table+".is_deleted = ?", false)
	}
}
