package repository

import (
	"context"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"todo/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create adds a new tag. A duplicate name yields ErrConflict.
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if IsUniqueViolationError(err) {
			return errors.Wrapf(ErrConflict, "tag %q already exists", tag.Name)
		}
		return err
	}
	return nil
}

// GetByID retrieves a tag by its ID
func (r *TagRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	var tag model.Tag
	result := r.db.WithContext(ctx).First(&tag, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Tag", id)
		}
		return nil, result.Error
	}
	return &tag, nil
}

func (r *TagRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tag{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistingIDs returns the subset of ids that belong to a stored tag.
func (r *TagRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := []int64{}
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Tag{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

// List returns every tag ordered by name
func (r *TagRepository) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	result := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// Delete removes a tag by its ID
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("Tag", id)
	}
	return nil
}
