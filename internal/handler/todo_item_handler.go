package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guregu/null/v5"

	"todo/internal/model"
	"todo/internal/service"
)

type ItemQueryService interface {
	GetItemsWithPagination(ctx context.Context, q service.ItemQuery) (service.PaginatedList[service.TodoItemDTO], error)
}

type ItemTagService interface {
	AddTag(ctx context.Context, itemID, tagID int64) error
	RemoveTag(ctx context.Context, itemID, tagID int64) error
	ReplaceTags(ctx context.Context, itemID int64, tagIDs []int64) error
}

// ItemQueryParams are the query-string filters of the item listing. They are
// kept as text so that malformed values fall back instead of failing.
type ItemQueryParams struct {
	ListID         string   `form:"listId"`
	PageNumber     string   `form:"pageNumber"`
	PageSize       string   `form:"pageSize"`
	TagIDs         []string `form:"tagIds"`
	SearchTerm     string   `form:"searchTerm"`
	IncludeDeleted string   `form:"includeDeleted"`
}

// Query converts the params. Unparsable numbers become zero, which the query
// service treats as "no list" or "use the default", and bad tag ids are skipped.
func (p ItemQueryParams) Query() service.ItemQuery {
	listID, _ := strconv.ParseInt(p.ListID, 10, 64)
	pageNumber, _ := strconv.Atoi(p.PageNumber)
	pageSize, _ := strconv.Atoi(p.PageSize)

	var tagIDs []int64
	for _, raw := range p.TagIDs {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			tagIDs = append(tagIDs, id)
		}
	}

	visibility := model.VisibleOnly
	if includeDeleted, _ := strconv.ParseBool(p.IncludeDeleted); includeDeleted {
		visibility = model.IncludeDeleted
	}

	return service.ItemQuery{
		ListID:     listID,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TagIDs:     tagIDs,
		SearchTerm: p.SearchTerm,
		Visibility: visibility,
	}
}

type CreateTodoItemRequest struct {
	ListID int64  `json:"listId" binding:"required"`
	Title  string `json:"title" binding:"required"`
}

type UpdateTodoItemRequest struct {
	Title string `json:"title" binding:"required"`
	Done  bool   `json:"done"`
}

type UpdateTodoItemDetailRequest struct {
	ListID           int64       `json:"listId" binding:"required"`
	Priority         int         `json:"priority"`
	Note             null.String `json:"note" swaggertype:"string"`
	BackgroundColour string      `json:"backgroundColour"`
	Reminder         *time.Time  `json:"reminder"`
}

// TodoItemHandler handles item-related HTTP requests
type TodoItemHandler struct {
	todos    TodoService
	queries  ItemQueryService
	itemTags ItemTagService
	deletes  SoftDeleteService
}

func NewTodoItemHandler(todos TodoService, queries ItemQueryService, itemTags ItemTagService, deletes SoftDeleteService) *TodoItemHandler {
	return &TodoItemHandler{
		todos:    todos,
		queries:  queries,
		itemTags: itemTags,
		deletes:  deletes,
	}
}

// List godoc
// @Summary      Page through the items of a list
// @Description  Items carrying any of tagIds match. searchTerm matches title, note or tag name, ignoring case.
// @Tags         Items
// @Produce      json
// @Param        listId          query  int     false  "List ID"
// @Param        pageNumber      query  int     false  "Page number (1-based)"
// @Param        pageSize        query  int     false  "Page size"
// @Param        tagIds          query  []int   false  "Tag IDs" collectionFormat(multi)
// @Param        searchTerm      query  string  false  "Search term"
// @Param        includeDeleted  query  bool    false  "Include soft-deleted items"
// @Success      200  {object}  service.PaginatedList[service.TodoItemDTO]
// @Security     BearerAuth
// @Router       /api/todo-items [get]
func (h *TodoItemHandler) List(c *gin.Context) {
	var params ItemQueryParams
	_ = c.ShouldBindQuery(&params) // text fields cannot fail to bind

	page, err := h.queries.GetItemsWithPagination(c.Request.Context(), params.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary      Add an item to a list
// @Tags         Items
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTodoItemRequest  true  "Item"
// @Success      201      {object}  CreatedResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-items [post]
func (h *TodoItemHandler) Create(c *gin.Context) {
	var req CreateTodoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	id, err := h.todos.CreateItem(c.Request.Context(), req.ListID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Update godoc
// @Summary      Rename an item or toggle its completion
// @Tags         Items
// @Accept       json
// @Param        id       path  int                    true  "Item ID"
// @Param        request  body  UpdateTodoItemRequest  true  "Item"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-items/{id} [put]
func (h *TodoItemHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}
	var req UpdateTodoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	if err := h.todos.UpdateItem(c.Request.Context(), id, req.Title, req.Done); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateDetail godoc
// @Summary      Move an item or change its priority, note, colour and reminder
// @Tags         Items
// @Accept       json
// @Param        id       path  int                          true  "Item ID"
// @Param        request  body  UpdateTodoItemDetailRequest  true  "Detail"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-items/{id}/detail [put]
func (h *TodoItemHandler) UpdateDetail(c *gin.Context) {
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}
	var req UpdateTodoItemDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	err := h.todos.UpdateItemDetail(c.Request.Context(), id, service.ItemDetail{
		ListID:           req.ListID,
		Priority:         model.PriorityLevel(req.Priority),
		Note:             req.Note,
		BackgroundColour: req.BackgroundColour,
		Reminder:         req.Reminder,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary      Soft-delete an item
// @Tags         Items
// @Param        id   path  int  true  "Item ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-items/{id} [delete]
func (h *TodoItemHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}
	if err := h.deletes.DeleteItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddTag godoc
// @Summary      Attach a tag to an item
// @Tags         Items
// @Param        id     path  int  true  "Item ID"
// @Param        tagId  path  int  true  "Tag ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-items/{id}/tags/{tagId} [post]
func (h *TodoItemHandler) AddTag(c *gin.Context) {
	itemID, tagID, ok := itemAndTagIDs(c)
	if !ok {
		return
	}
	if err := h.itemTags.AddTag(c.Request.Context(), itemID, tagID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveTag godoc
// @Summary      Detach a tag from an item
// @Tags         Items
// @Param        id     path  int  true  "Item ID"
// @Param        tagId  path  int  true  "Tag ID"
// @Success      204
// @Security     BearerAuth
// @Router       /api/todo-items/{id}/tags/{tagId} [delete]
func (h *TodoItemHandler) RemoveTag(c *gin.Context) {
	itemID, tagID, ok := itemAndTagIDs(c)
	if !ok {
		return
	}
	if err := h.itemTags.RemoveTag(c.Request.Context(), itemID, tagID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceTags godoc
// @Summary      Replace the whole tag set of an item
// @Tags         Items
// @Accept       json
// @Param        id       path  int    true  "Item ID"
// @Param        request  body  []int  true  "Tag IDs"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-items/{id}/tags [put]
func (h *TodoItemHandler) ReplaceTags(c *gin.Context) {
	id, ok := paramID(c, "id", "item")
	if !ok {
		return
	}
	var tagIDs []int64
	if err := c.ShouldBindJSON(&tagIDs); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	if err := h.itemTags.ReplaceTags(c.Request.Context(), id, tagIDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func itemAndTagIDs(c *gin.Context) (int64, int64, bool) {
	itemID, ok := paramID(c, "id", "item")
	if !ok {
		return 0, 0, false
	}
	tagID, ok := paramID(c, "tagId", "tag")
	if !ok {
		return 0, 0, false
	}
	return itemID, tagID, true
}
