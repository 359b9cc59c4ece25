package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/hashicorp/go-set/v2"

	"todo/internal/logging"
	"todo/internal/model"
	"todo/internal/repository"
)

// ItemTagService manages which tags are attached to an item.
type ItemTagService struct {
	store *repository.Store
}

func NewItemTagService(store *repository.Store) *ItemTagService {
	return &ItemTagService{store: store}
}

// AddTag links a tag to an item. Linking twice is not an error and leaves one link.
func (s *ItemTagService) AddTag(ctx context.Context, itemID, tagID int64) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}
		tagExists, err := tx.Tags.Exists(ctx, tagID)
		if err != nil {
			return err
		}
		if !tagExists {
			return repository.NewNotFoundError("Tag", tagID)
		}

		linked, err := tx.ItemTags.Exists(ctx, itemID, tagID)
		if err != nil || linked {
			return err
		}
		if err := tx.ItemTags.Attach(ctx, itemID, tagID); err != nil {
			return err
		}

		logging.LoggerFromContext(ctx).InfoContext(ctx, "tag added to item",
			slog.Int64("item_id", itemID), slog.Int64("tag_id", tagID))
		return nil
	})
}

// RemoveTag unlinks a tag from an item. A missing link is not an error.
func (s *ItemTagService) RemoveTag(ctx context.Context, itemID, tagID int64) error {
	removed, err := s.store.ItemTags.Detach(ctx, itemID, tagID)
	if err != nil {
		return err
	}
	if removed {
		logging.LoggerFromContext(ctx).InfoContext(ctx, "tag removed from item",
			slog.Int64("item_id", itemID), slog.Int64("tag_id", tagID))
	}
	return nil
}

// ReplaceTags makes tagIDs the exact tag set of the item. Every unknown tag id is
// reported in a single NotFoundError, in which case the existing links stay as they were.
func (s *ItemTagService) ReplaceTags(ctx context.Context, itemID int64, tagIDs []int64) error {
	wanted := set.From(tagIDs)
	ids := wanted.Slice()
	slices.Sort(ids)

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireItem(ctx, tx, itemID); err != nil {
			return err
		}

		found, err := tx.Tags.ExistingIDs(ctx, ids)
		if err != nil {
			return err
		}
		if missing := wanted.Difference(set.From(found)); missing.Size() > 0 {
			missingIDs := missing.Slice()
			slices.Sort(missingIDs)
			return repository.NewNotFoundError("Tag", missingIDs...)
		}

		removed, err := tx.ItemTags.DetachAll(ctx, itemID)
		if err != nil {
			return err
		}
		if err := tx.ItemTags.AttachMany(ctx, itemID, ids); err != nil {
			return err
		}

		logging.LoggerFromContext(ctx).InfoContext(ctx, "item tags replaced",
			slog.Int64("item_id", itemID), slog.Int64("removed", removed), slog.Int("added", len(ids)))
		return nil
	})
}

// requireItem fails with a NotFoundError unless a visible item with that id exists.
func requireItem(ctx context.Context, tx *repository.Store, itemID int64) error {
	exists, err := tx.Items.Exists(ctx, itemID, model.VisibleOnly)
	if err != nil {
		return err
	}
	if !exists {
		return repository.NewNotFoundError("TodoItem", itemID)
	}
	return nil
}
