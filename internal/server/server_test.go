package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"todo/internal/config"
	"todo/internal/database"
	"todo/internal/handler"
	"todo/internal/server"
	"todo/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type testClient struct {
	t      *testing.T
	engine http.Handler
	token  string
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp := httptest.NewRecorder()
	c.engine.ServeHTTP(resp, req)
	return resp
}

func (c *testClient) create(path string, body any) int64 {
	c.t.Helper()
	resp := c.do("POST", path, body)
	require.Equal(c.t, http.StatusCreated, resp.Code, resp.Body.String())
	var created handler.CreatedResponse
	require.NoError(c.t, json.Unmarshal(resp.Body.Bytes(), &created))
	return created.ID
}

func newTestServer(t *testing.T) *testClient {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "todo.db"), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		ColourPolicy:   "palette",
		CORSOrigins:    "http://localhost:4200",
	}
	s, err := server.New(cfg, db, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	require.NoError(t, err)
	return &testClient{t: t, engine: s.Engine}
}

func TestServer_ApiRequiresToken(t *testing.T) {
	c := newTestServer(t)

	resp := c.do("GET", "/api/tags", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestServer_Healthz(t *testing.T) {
	c := newTestServer(t)

	resp := c.do("GET", "/healthz", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestServer_TodoFlow(t *testing.T) {
	c := newTestServer(t)

	// Register and authenticate
	resp := c.do("POST", "/register", handler.RegisterRequest{
		Email:    "ada@example.com",
		Name:     "Ada",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var auth handler.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &auth))
	c.token = auth.Token

	// Build a list with three items and two tags
	listID := c.create("/api/todo-lists", map[string]any{"title": "Chores", "colour": "#FF5733"})
	milk := c.create("/api/todo-items", map[string]any{"listId": listID, "title": "Buy milk"})
	bread := c.create("/api/todo-items", map[string]any{"listId": listID, "title": "Buy bread"})
	c.create("/api/todo-items", map[string]any{"listId": listID, "title": "Walk dog"})
	shopping := c.create("/api/tags", map[string]any{"name": "shopping"})

	resp = c.do("PUT", itemPath(milk, "/tags"), []int64{shopping})
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())
	resp = c.do("POST", itemPath(bread, "/tags/")+itoa(shopping), nil)
	require.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	// Duplicate tag names conflict
	resp = c.do("POST", "/api/tags", map[string]any{"name": "shopping"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	// Colours outside the palette are rejected
	resp = c.do("PUT", itemPath(milk, "/detail"), map[string]any{"listId": listID, "priority": 2, "backgroundColour": "#123456"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Soft-delete one tagged item
	resp = c.do("DELETE", itemPath(milk, ""), nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	page := c.items("/api/todo-items?listId=" + itoa(listID) + "&tagIds=" + itoa(shopping))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Buy bread", page.Items[0].Title.String)

	page = c.items("/api/todo-items?listId=" + itoa(listID) + "&tagIds=" + itoa(shopping) + "&includeDeleted=true")
	assert.Len(t, page.Items, 2)

	page = c.items("/api/todo-items?listId=" + itoa(listID) + "&searchTerm=SHOP")
	assert.Len(t, page.Items, 1, "search reaches tag names")

	// Completing an item is counted once
	resp = c.do("PUT", itemPath(bread, ""), map[string]any{"title": "Buy bread", "done": true})
	require.Equal(t, http.StatusNoContent, resp.Code)
	resp = c.do("PUT", itemPath(bread, ""), map[string]any{"title": "Buy bread", "done": true})
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = c.do("GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "todo_items_completed_total 1")
	assert.Contains(t, resp.Body.String(), `todo_soft_deletes_total{entity="TodoItem"} 1`)

	// Unknown items are 404
	resp = c.do("DELETE", "/api/todo-items/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func (c *testClient) items(path string) service.PaginatedList[service.TodoItemDTO] {
	c.t.Helper()
	resp := c.do("GET", path, nil)
	require.Equal(c.t, http.StatusOK, resp.Code, resp.Body.String())
	var page service.PaginatedList[service.TodoItemDTO]
	require.NoError(c.t, json.Unmarshal(resp.Body.Bytes(), &page))
	return page
}

func itemPath(id int64, suffix string) string {
	return "/api/todo-items/" + itoa(id) + suffix
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
