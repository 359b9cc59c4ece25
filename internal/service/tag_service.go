package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"todo/internal/logging"
	"todo/internal/model"
	"todo/internal/repository"
)

type TagService struct {
	store *repository.Store
}

func NewTagService(store *repository.Store) *TagService {
	return &TagService{store: store}
}

// CreateTag stores a tag under its trimmed name. The colour is kept as given, only trimmed.
func (s *TagService) CreateTag(ctx context.Context, name, colour string) (int64, error) {
	name, err := requireText("tag name", name, model.MaxTagNameLength)
	if err != nil {
		return 0, err
	}
	colour = strings.TrimSpace(colour)
	if colour == "" {
		colour = model.DefaultTagColour
	}
	if len(colour) > model.MaxColourLength {
		return 0, errors.Wrapf(ErrBadParameter, "tag colour must be at most %d characters", model.MaxColourLength)
	}

	tag := &model.Tag{Name: name, Colour: colour}
	if err := s.store.Tags.Create(ctx, tag); err != nil {
		return 0, err
	}

	logging.LoggerFromContext(ctx).InfoContext(ctx, "tag created",
		slog.Int64("tag_id", tag.ID), slog.String("name", tag.Name))
	return tag.ID, nil
}

// DeleteTag removes the tag together with every link to it.
func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	var unlinked int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		exists, err := tx.Tags.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.NewNotFoundError("Tag", id)
		}
		if unlinked, err = tx.ItemTags.DetachTag(ctx, id); err != nil {
			return err
		}
		return tx.Tags.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logging.LoggerFromContext(ctx).InfoContext(ctx, "tag deleted",
		slog.Int64("tag_id", id), slog.Int64("links_removed", unlinked))
	return nil
}

// ListTags returns every tag sorted by name.
func (s *TagService) ListTags(ctx context.Context) ([]TagDTO, error) {
	tags, err := s.store.Tags.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]TagDTO, len(tags))
	for i, t := range tags {
		result[i] = toTagDTO(t)
	}
	return result, nil
}
