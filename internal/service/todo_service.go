package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"todo/internal/logging"
	"todo/internal/model"
	"todo/internal/repository"
)

// TodoService covers the plain list and item commands.
type TodoService struct {
	store *repository.Store
	opts  Options
}

func NewTodoService(store *repository.Store, opts Options) *TodoService {
	return &TodoService{store: store, opts: opts.withDefaults()}
}

type ItemDetail struct {
	ListID           int64
	Priority         model.PriorityLevel
	Note             null.String
	BackgroundColour string
	Reminder         *time.Time
}

func (s *TodoService) CreateList(ctx context.Context, title, colour string) (int64, error) {
	title, err := requireText("list title", title, model.MaxTitleLength)
	if err != nil {
		return 0, err
	}
	c, err := s.parseColour(colour)
	if err != nil {
		return 0, err
	}

	list := &model.TodoList{Title: title, Colour: c}
	if err := s.store.Lists.Create(ctx, list); err != nil {
		return 0, err
	}

	logging.LoggerFromContext(ctx).InfoContext(ctx, "list created", slog.Int64("list_id", list.ID))
	return list.ID, nil
}

// GetLists returns the visible lists with their visible items.
func (s *TodoService) GetLists(ctx context.Context) ([]TodoListDTO, error) {
	lists, err := s.store.Lists.List(ctx, model.VisibleOnly)
	if err != nil {
		return nil, err
	}
	result := make([]TodoListDTO, len(lists))
	for i, l := range lists {
		result[i] = toTodoListDTO(l)
	}
	return result, nil
}

func (s *TodoService) CreateItem(ctx context.Context, listID int64, title string) (int64, error) {
	title, err := requireText("item title", title, model.MaxTitleLength)
	if err != nil {
		return 0, err
	}
	item := &model.TodoItem{
		ListID:           listID,
		Title:            null.StringFrom(title),
		BackgroundColour: model.White,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireList(ctx, tx, listID); err != nil {
			return err
		}
		return tx.Items.Create(ctx, item)
	})
	if err != nil {
		return 0, err
	}

	logging.LoggerFromContext(ctx).InfoContext(ctx, "item created",
		slog.Int64("item_id", item.ID), slog.Int64("list_id", listID))
	return item.ID, nil
}

// UpdateItem changes the title and done state. Completing a pending item
// notifies once the change is committed.
func (s *TodoService) UpdateItem(ctx context.Context, id int64, title string, done bool) error {
	title, err := requireText("item title", title, model.MaxTitleLength)
	if err != nil {
		return err
	}
	var completed *model.ItemCompleted
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		item, err := tx.Items.GetByID(ctx, id, model.VisibleOnly)
		if err != nil {
			return err
		}
		item.Title = null.StringFrom(title)
		if item.SetDone(done) {
			completed = &model.ItemCompleted{ItemID: item.ID, ListID: item.ListID, CompletedAt: s.opts.Now()}
		}
		return tx.Items.Update(ctx, item)
	})
	if err != nil {
		return err
	}

	if completed != nil {
		logging.LoggerFromContext(ctx).InfoContext(ctx, "item completed", slog.Int64("item_id", id))
		s.opts.Notifier.ItemCompleted(ctx, *completed)
	}
	return nil
}

// UpdateItemDetail moves the item to another list and sets its details.
func (s *TodoService) UpdateItemDetail(ctx context.Context, id int64, d ItemDetail) error {
	if !d.Priority.Valid() {
		return errors.Wrapf(ErrBadParameter, "unknown priority %d", d.Priority)
	}
	colour, err := s.parseColour(d.BackgroundColour)
	if err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		item, err := tx.Items.GetByID(ctx, id, model.VisibleOnly)
		if err != nil {
			return err
		}
		if item.ListID != d.ListID {
			if err := requireList(ctx, tx, d.ListID); err != nil {
				return err
			}
		}

		item.ListID = d.ListID
		item.Priority = d.Priority
		item.Note = d.Note
		item.BackgroundColour = colour
		item.Reminder = d.Reminder
		return tx.Items.Update(ctx, item)
	})
}

// parseColour applies the configured policy. An empty code means white.
func (s *TodoService) parseColour(code string) (model.Colour, error) {
	if strings.TrimSpace(code) == "" {
		return model.White, nil
	}
	c, err := s.opts.ColourPolicy.Parse(code)
	if err != nil {
		return "", errors.Mark(err, ErrBadParameter)
	}
	return c, nil
}

func requireList(ctx context.Context, tx *repository.Store, listID int64) error {
	exists, err := tx.Lists.Exists(ctx, listID, model.VisibleOnly)
	if err != nil {
		return err
	}
	if !exists {
		return repository.NewNotFoundError("TodoList", listID)
	}
	return nil
}
