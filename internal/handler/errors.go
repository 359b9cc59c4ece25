package handler

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"todo/internal/logging"
	"todo/internal/repository"
	"todo/internal/service"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto status codes. Anything unexpected is
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrBadParameter):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logging.LoggerFromContext(c.Request.Context()).Error("request failed",
			"path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func paramID(c *gin.Context, name, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + entity + " ID format"})
		return 0, false
	}
	return id, true
}

// CreatedResponse carries the identifier of a freshly created entity.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
