package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo/internal/model"
)

// ItemTagRepository owns the todo_item_tags join table.
type ItemTagRepository struct {
	db *gorm.DB
}

func NewItemTagRepository(db *gorm.DB) *ItemTagRepository {
	return &ItemTagRepository{db: db}
}

func (r *ItemTagRepository) Exists(ctx context.Context, itemID, tagID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TodoItemTag{}).
		Where("todo_item_id = ? AND tag_id = ?", itemID, tagID).
		Count(&count).Error
	return count > 0, err
}

// Attach links a tag to an item. An existing link is left as is.
func (r *ItemTagRepository) Attach(ctx context.Context, itemID, tagID int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.TodoItemTag{TodoItemID: itemID, TagID: tagID}).Error
}

// AttachMany links every tag in tagIDs to the item. tagIDs must not contain duplicates.
func (r *ItemTagRepository) AttachMany(ctx context.Context, itemID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]model.TodoItemTag, len(tagIDs))
	for i, tagID := range tagIDs {
		links[i] = model.TodoItemTag{TodoItemID: itemID, TagID: tagID}
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

// Detach removes a single link and reports whether one existed.
func (r *ItemTagRepository) Detach(ctx context.Context, itemID, tagID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("todo_item_id = ? AND tag_id = ?", itemID, tagID).
		Delete(&model.TodoItemTag{})
	return result.RowsAffected > 0, result.Error
}

// DetachAll removes every link of an item
func (r *ItemTagRepository) DetachAll(ctx context.Context, itemID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("todo_item_id = ?", itemID).Delete(&model.TodoItemTag{})
	return result.RowsAffected, result.Error
}

// DetachTag removes every link pointing at a tag
func (r *ItemTagRepository) DetachTag(ctx context.Context, tagID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("tag_id = ?", tagID).Delete(&model.TodoItemTag{})
	return result.RowsAffected, result.Error
}

// TagIDs lists the tags linked to an item in ascending order.
func (r *ItemTagRepository) TagIDs(ctx context.Context, itemID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).Model(&model.TodoItemTag{}).
		Where("todo_item_id = ?", itemID).
		Order("tag_id ASC").
		Pluck("tag_id", &ids).Error
	return ids, err
}
