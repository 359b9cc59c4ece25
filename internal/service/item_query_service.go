package service

import (
	"context"
	"math"
	"strings"

	"todo/internal/model"
	"todo/internal/repository"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

// ItemQuery selects a page of one list's items. TagIDs match when an item carries
// any of them. SearchTerm is matched case-insensitively against title, note and tag names.
type ItemQuery struct {
	ListID     int64
	PageNumber int
	PageSize   int
	TagIDs     []int64
	SearchTerm string
	Visibility model.Visibility
}

type ItemQueryService struct {
	store *repository.Store
}

func NewItemQueryService(store *repository.Store) *ItemQueryService {
	return &ItemQueryService{store: store}
}

// GetItemsWithPagination never fails on bad input: an unknown list or tag simply
// matches nothing and paging values below 1 fall back to the defaults.
func (s *ItemQueryService) GetItemsWithPagination(ctx context.Context, q ItemQuery) (PaginatedList[TodoItemDTO], error) {
	pageNumber, pageSize := q.PageNumber, q.PageSize
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	offset := math.MaxInt
	if pageNumber-1 <= math.MaxInt/pageSize {
		offset = (pageNumber - 1) * pageSize
	}

	items, total, err := s.store.Items.Page(ctx, repository.ItemFilter{
		ListID:     q.ListID,
		TagIDs:     q.TagIDs,
		SearchTerm: strings.ToLower(strings.TrimSpace(q.SearchTerm)),
		Visibility: q.Visibility,
		Offset:     offset,
		Limit:      pageSize,
	})
	if err != nil {
		return PaginatedList[TodoItemDTO]{}, err
	}

	dtos := make([]TodoItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toTodoItemDTO(item)
	}
	return NewPaginatedList(dtos, total, pageNumber, pageSize), nil
}
