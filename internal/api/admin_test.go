package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsersCarriesAdminID(t *testing.T) {
	var gotAdminID string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		gotAdminID = r.URL.Query().Get("adminUserId")
		w.Write([]byte(`{"success": true, "data": [
			{"userId": 1, "username": "admin", "email": "admin@example.com", "isAdmin": true},
			{"userId": 2, "username": "mori", "email": "mori@example.com"}
		]}`))
	})

	client := newTestClient(t, mux)
	users, err := client.AdminListUsers(1)
	require.NoError(t, err)
	assert.Equal(t, "1", gotAdminID)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin)
	assert.Equal(t, "mori", users[1].Username)
}

func TestAdminCreateUserStampsRequestBody(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/users", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success": true, "data": {"userId": 9, "username": "newbie", "email": "n@example.com"}}`))
	})

	client := newTestClient(t, mux)
	user, err := client.AdminCreateUser(CreateUserRequest{
		Username: "newbie", Email: "n@example.com", Password: "secret123",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.UserID)
	// 请求体里也要带上发起操作的管理员 ID
	assert.Equal(t, float64(1), gotBody["userId"])
}

func TestAdminUpdateUserPartialFields(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/admin/users/2", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"success": true, "data": {"userId": 2, "username": "renamed", "email": "m@example.com"}}`))
	})

	client := newTestClient(t, mux)
	name := "renamed"
	user, err := client.AdminUpdateUser(2, UpdateUserRequest{Username: &name}, 1)
	require.NoError(t, err)
	assert.Equal(t, "renamed", user.Username)

	// nil 字段不应出现在请求体里
	assert.Contains(t, gotBody, "username")
	assert.NotContains(t, gotBody, "email")
	assert.NotContains(t, gotBody, "password")
}

func TestAdminDeleteUserForbidden(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusForbidden, `{"success": false, "message": "需要管理员权限"}`))

	err := client.AdminDeleteUser(2, 5)
	require.Error(t, err)
	assert.Equal(t, "需要管理员权限", err.Error())
}

func TestAdminCreateBook(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/books", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"id": 5, "title": "雾山五行", "category": "Donghua"}}`))
	})

	client := newTestClient(t, mux)
	book, err := client.AdminCreateBook(CreateBookRequest{
		Title: "雾山五行", Author: "林魂", Category: "Donghua",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), book.ID)
	assert.Equal(t, "雾山五行", book.Title)
}

func TestAdminDeleteBook(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/admin/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success": true}`))
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.AdminDeleteBook(5, 1))
	assert.Equal(t, "/api/admin/books/5", gotPath)
}
