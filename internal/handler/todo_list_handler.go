package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo/internal/service"
)

type TodoService interface {
	CreateList(ctx context.Context, title, colour string) (int64, error)
	GetLists(ctx context.Context) ([]service.TodoListDTO, error)
	CreateItem(ctx context.Context, listID int64, title string) (int64, error)
	UpdateItem(ctx context.Context, id int64, title string, done bool) error
	UpdateItemDetail(ctx context.Context, id int64, d service.ItemDetail) error
}

type SoftDeleteService interface {
	DeleteItem(ctx context.Context, id int64) error
	DeleteList(ctx context.Context, id int64) error
}

// CreateTodoListRequest defines the expected request body for creating a list
type CreateTodoListRequest struct {
	Title  string `json:"title" binding:"required"`
	Colour string `json:"colour"`
}

// TodoListHandler handles list-related HTTP requests
type TodoListHandler struct {
	todos   TodoService
	deletes SoftDeleteService
}

func NewTodoListHandler(todos TodoService, deletes SoftDeleteService) *TodoListHandler {
	return &TodoListHandler{todos: todos, deletes: deletes}
}

// List godoc
// @Summary      List todo lists with their visible items
// @Tags         Lists
// @Produce      json
// @Success      200  {array}  service.TodoListDTO
// @Security     BearerAuth
// @Router       /api/todo-lists [get]
func (h *TodoListHandler) List(c *gin.Context) {
	lists, err := h.todos.GetLists(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// Create godoc
// @Summary      Create a todo list
// @Tags         Lists
// @Accept       json
// @Produce      json
// @Param        request  body      CreateTodoListRequest  true  "List"
// @Success      201      {object}  CreatedResponse
// @Failure      400      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-lists [post]
func (h *TodoListHandler) Create(c *gin.Context) {
	var req CreateTodoListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	id, err := h.todos.CreateList(c.Request.Context(), req.Title, req.Colour)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// Delete godoc
// @Summary      Soft-delete a list and its items
// @Tags         Lists
// @Param        id   path  int  true  "List ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/todo-lists/{id} [delete]
func (h *TodoListHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "list")
	if !ok {
		return
	}
	if err := h.deletes.DeleteList(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
