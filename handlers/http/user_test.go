package httpHandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"user-server/entities"
	"user-server/repositories"
	"user-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repositories.NewMemoryUserRepository()
	useCase := usecases.NewUserUseCase(repo)
	handler := NewUserHandler(useCase)

	router := gin.New()
	users := router.Group("/api/users")
	{
		users.GET("", handler.GetAllUsers)
		users.POST("", handler.CreateUser)
		users.GET("/search", handler.SearchUsers)
		users.GET("/count", handler.CountUsers)
		users.GET("/:id", handler.GetUser)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)
	}
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeUser(t *testing.T, w *httptest.ResponseRecorder) entities.User {
	t.Helper()

	var user entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user
}

func TestCreateUser_Returns201WithRecord(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com","phone":"555-0100"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	user := decodeUser(t, w)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ann Lee", user.Name)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUser_IgnoresClientSuppliedID(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, "POST", "/api/users", `{"id":42,"name":"Ann Lee","email":"ann@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), decodeUser(t, w).ID)
}

func TestCreateUser_DuplicateEmailIs400(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, router, "POST", "/api/users", `{"name":"Bo","email":"ann@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestCreateUser_ValidationIs400(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, "POST", "/api/users", `{"name":"","email":"ann@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "POST", "/api/users", `{"name":"Ann","email":"no-at-sign"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "POST", "/api/users", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllUsers(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, "GET", "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String(), "empty store lists as empty array")

	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)
	doRequest(t, router, "POST", "/api/users", `{"name":"Bo","email":"bo@x.com"}`)

	w = doRequest(t, router, "GET", "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var users []entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestGetUser_ByID(t *testing.T) {
	router := newTestRouter()

	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)

	w := doRequest(t, router, "GET", "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ann Lee", decodeUser(t, w).Name)

	w = doRequest(t, router, "GET", "/api/users/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A non-numeric id designates no record
	w = doRequest(t, router, "GET", "/api/users/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	router := newTestRouter()

	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com","phone":"555-0100"}`)

	w := doRequest(t, router, "PUT", "/api/users/1", `{"name":"Ann Lee","email":"ann@x.com","phone":"555-0199"}`)
	require.Equal(t, http.StatusOK, w.Code)

	updated := decodeUser(t, w)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "555-0199", updated.Phone)

	w = doRequest(t, router, "PUT", "/api/users/999", `{"name":"Ann","email":"ann2@x.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_EmailConflictIs400(t *testing.T) {
	router := newTestRouter()

	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)
	doRequest(t, router, "POST", "/api/users", `{"name":"Bo","email":"bo@x.com"}`)

	w := doRequest(t, router, "PUT", "/api/users/2", `{"name":"Bo","email":"ann@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUser(t *testing.T) {
	router := newTestRouter()

	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)

	w := doRequest(t, router, "DELETE", "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deleted")

	w = doRequest(t, router, "GET", "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, "DELETE", "/api/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUsers(t *testing.T) {
	router := newTestRouter()

	doRequest(t, router, "POST", "/api/users", `{"name":"John Smith","email":"john@x.com"}`)
	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)

	w := doRequest(t, router, "GET", "/api/users/search?name=john", "")
	require.Equal(t, http.StatusOK, w.Code)

	var users []entities.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "John Smith", users[0].Name)

	// Blank term behaves as list-all
	w = doRequest(t, router, "GET", "/api/users/search?name=", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 2)
}

func TestCountUsers_ReturnsBareInteger(t *testing.T) {
	router := newTestRouter()

	doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)
	doRequest(t, router, "POST", "/api/users", `{"name":"Bo","email":"bo@x.com"}`)

	w := doRequest(t, router, "GET", "/api/users/count", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Body.String())
}

// Full lifecycle from the API surface: create, conflict, read, delete, gone.
func TestUserLifecycle(t *testing.T) {
	router := newTestRouter()

	w := doRequest(t, router, "POST", "/api/users", `{"name":"Ann Lee","email":"ann@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, int64(1), decodeUser(t, w).ID)

	w = doRequest(t, router, "POST", "/api/users", `{"name":"Bo","email":"ann@x.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "GET", "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Ann Lee", decodeUser(t, w).Name)

	w = doRequest(t, router, "DELETE", "/api/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/api/users/1", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
