package api

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserFavoritesSkipsEntriesWithoutBook(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"data": [
			{"id": 1, "userId": 5, "bookId": 10, "book": {"id": 10, "title": "火之鸟", "author": "手冢治虫", "category": "Manga"}},
			{"id": 2, "userId": 5, "bookId": 11},
			{"id": 3, "userId": 5, "bookId": 12, "book": {"id": 12, "title": "神之塔", "author": "SIU", "category": "Manhwa"}, "isRead": true}
		]
	}`))

	favorites, err := client.GetUserFavorites(5)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "火之鸟", favorites[0].Book.Title)
	assert.Equal(t, "神之塔", favorites[1].Book.Title)
	assert.True(t, favorites[1].IsRead)
}

func TestAddFavoriteUsesEmbeddedBook(t *testing.T) {
	var bookFetches int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"data": {"id": 1, "userId": 5, "bookId": 10,
				"book": {"id": 10, "title": "火之鸟", "author": "手冢治虫", "category": "Manga"}}
		}`))
	})
	mux.HandleFunc("GET /api/books/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&bookFetches, 1)
		w.Write([]byte(`{"success": true, "data": {"id": 10, "title": "火之鸟"}}`))
	})

	client := newTestClient(t, mux)
	fav, err := client.AddFavorite(5, 10)
	require.NoError(t, err)
	require.NotNil(t, fav.Book)
	assert.Equal(t, "火之鸟", fav.Book.Title)
	assert.Equal(t, int32(0), atomic.LoadInt32(&bookFetches), "内嵌图书齐全时不应补查")
}

func TestAddFavoriteReconcilesMissingBook(t *testing.T) {
	var bookFetches int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		// 创建响应不带内嵌图书
		w.Write([]byte(`{"success": true, "data": {"id": 7, "userId": 5, "bookId": 10}}`))
	})
	mux.HandleFunc("GET /api/books/10", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&bookFetches, 1)
		w.Write([]byte(`{"success": true, "data": {"id": 10, "title": "火之鸟", "author": "手冢治虫", "category": "Manga"}}`))
	})

	client := newTestClient(t, mux)
	fav, err := client.AddFavorite(5, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7), fav.ID)
	require.NotNil(t, fav.Book)
	assert.Equal(t, "火之鸟", fav.Book.Title)
	assert.Equal(t, int32(1), atomic.LoadInt32(&bookFetches), "应恰好补查一次")
}

func TestAddFavoriteReconciliationFailureFailsWhole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"id": 7, "userId": 5, "bookId": 404}}`))
	})
	mux.HandleFunc("GET /api/books/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "message": "图书不存在"}`))
	})

	client := newTestClient(t, mux)
	fav, err := client.AddFavorite(5, 404)
	assert.Nil(t, fav)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookDataMissing)
	assert.Contains(t, err.Error(), "无法获取图书数据")
}

func TestAddFavoriteDuplicateRejected(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusBadRequest, `{
		"success": false, "message": "已收藏过这本书"
	}`))

	_, err := client.AddFavorite(5, 10)
	require.Error(t, err)
	assert.Equal(t, "已收藏过这本书", err.Error())
}

func TestRemoveFavorite(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/favorites/{id}", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success": true}`))
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.RemoveFavorite(42))
	assert.Equal(t, "/api/favorites/42", gotPath)
}

func TestToggleReadStatusSendsNewValue(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/favorites/{id}/toggle-read", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"success": true}`))
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.ToggleReadStatus(3, true))
	assert.Contains(t, gotBody, `"favoriteId":3`)
	assert.Contains(t, gotBody, `"isRead":true`)
}

func TestCheckFavorite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/favorites/check/5/10", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"id": 1, "userId": 5, "bookId": 10}}`))
	})
	mux.HandleFunc("GET /api/favorites/check/5/11", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": null}`))
	})

	client := newTestClient(t, mux)
	assert.True(t, client.CheckFavorite(5, 10))
	assert.False(t, client.CheckFavorite(5, 11))
}

func TestCheckFavoriteNetworkFailureMeansNotFavorited(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))

	assert.False(t, client.CheckFavorite(5, 10))
}
