package service

import (
	"context"
	"log/slog"

	"todo/internal/logging"
	"todo/internal/model"
	"todo/internal/repository"
)

// SoftDeleteService flags lists and items as deleted instead of removing them.
type SoftDeleteService struct {
	store *repository.Store
	opts  Options
}

func NewSoftDeleteService(store *repository.Store, opts Options) *SoftDeleteService {
	return &SoftDeleteService{store: store, opts: opts.withDefaults()}
}

// DeleteItem marks an item deleted. The lookup sees deleted items too, so deleting
// twice succeeds and refreshes the timestamp.
func (s *SoftDeleteService) DeleteItem(ctx context.Context, id int64) error {
	now := s.opts.Now()
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		item, err := tx.Items.GetByID(ctx, id, model.IncludeDeleted)
		if err != nil {
			return err
		}
		_, err = tx.Items.MarkDeleted(ctx, []int64{item.ID}, now)
		return err
	})
	if err != nil {
		return err
	}

	logging.LoggerFromContext(ctx).InfoContext(ctx, "item soft deleted", slog.Int64("item_id", id))
	s.opts.Notifier.SoftDeleted(ctx, "TodoItem", 1)
	return nil
}

// DeleteList marks a list and all of its live items deleted with one timestamp.
// Items that were already deleted keep their own timestamp.
func (s *SoftDeleteService) DeleteList(ctx context.Context, id int64) error {
	now := s.opts.Now()
	var cascaded []int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		list, err := tx.Lists.GetWithItems(ctx, id, model.IncludeDeleted)
		if err != nil {
			return err
		}

		cascaded = cascaded[:0]
		for i := range list.Items {
			if list.Items[i].IsDeleted {
				continue
			}
			list.Items[i].MarkDeleted(now)
			cascaded = append(cascaded, list.Items[i].ID)
		}

		if err := tx.Lists.MarkDeleted(ctx, list.ID, now); err != nil {
			return err
		}
		_, err = tx.Items.MarkDeleted(ctx, cascaded, now)
		return err
	})
	if err != nil {
		return err
	}

	logging.LoggerFromContext(ctx).InfoContext(ctx, "list soft deleted",
		slog.Int64("list_id", id), slog.Int("items_cascaded", len(cascaded)))
	s.opts.Notifier.SoftDeleted(ctx, "TodoList", 1)
	if len(cascaded) > 0 {
		s.opts.Notifier.SoftDeleted(ctx, "TodoItem", len(cascaded))
	}
	return nil
}
