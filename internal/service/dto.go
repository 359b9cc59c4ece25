package service

import (
	"time"

	"github.com/guregu/null/v5"

	"todo/internal/model"
)

type TagDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Colour    string    `json:"colour"`
	CreatedAt time.Time `json:"created"`
}

type TodoItemDTO struct {
	ID               int64       `json:"id"`
	ListID           int64       `json:"listId"`
	Title            null.String `json:"title"`
	Note             null.String `json:"note"`
	Done             bool        `json:"done"`
	Priority         int         `json:"priority"`
	Reminder         *time.Time  `json:"reminder,omitempty"`
	BackgroundColour string      `json:"backgroundColour"`
	IsDeleted        bool        `json:"isDeleted"`
	DeletedAt        *time.Time  `json:"deletedAt,omitempty"`
	Tags             []TagDTO    `json:"tags"`
}

type TodoListDTO struct {
	ID     int64         `json:"id"`
	Title  string        `json:"title"`
	Colour string        `json:"colour"`
	Items  []TodoItemDTO `json:"items"`
}

// PaginatedList is one page of a larger result.
type PaginatedList[T any] struct {
	Items           []T   `json:"items"`
	PageNumber      int   `json:"pageNumber"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

func NewPaginatedList[T any](items []T, count int64, pageNumber, pageSize int) PaginatedList[T] {
	totalPages := int(count / int64(pageSize))
	if count%int64(pageSize) != 0 {
		totalPages++
	}
	return PaginatedList[T]{
		Items:           items,
		PageNumber:      pageNumber,
		TotalPages:      totalPages,
		TotalCount:      count,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

func toTagDTO(t model.Tag) TagDTO {
	return TagDTO{
		ID:        t.ID,
		Name:      t.Name,
		Colour:    t.Colour,
		CreatedAt: t.CreatedAt,
	}
}

func toTodoItemDTO(i model.TodoItem) TodoItemDTO {
	tags := make([]TagDTO, len(i.Tags))
	for n, t := range i.Tags {
		tags[n] = toTagDTO(t)
	}
	return TodoItemDTO{
		ID:               i.ID,
		ListID:           i.ListID,
		Title:            i.Title,
		Note:             i.Note,
		Done:             i.Done,
		Priority:         int(i.Priority),
		Reminder:         i.Reminder,
		BackgroundColour: i.BackgroundColour.String(),
		IsDeleted:        i.IsDeleted,
		DeletedAt:        i.DeletedAt,
		Tags:             tags,
	}
}

func toTodoListDTO(l model.TodoList) TodoListDTO {
	items := make([]TodoItemDTO, len(l.Items))
	for n, i := range l.Items {
		items[n] = toTodoItemDTO(i)
	}
	return TodoListDTO{
		ID:     l.ID,
		Title:  l.Title,
		Colour: l.Colour.String(),
		Items:  items,
	}
}
