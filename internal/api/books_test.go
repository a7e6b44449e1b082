package api

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/hanashi/internal/model"
)

func TestGetAllBooks(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"data": [
			{"id": 1, "title": "火之鸟", "author": "手冢治虫", "category": "Manga"},
			{"id": 2, "title": "百年孤独", "author": "马尔克斯", "category": "Libro", "isbn": "9787544253994"}
		]
	}`))

	books, err := client.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "火之鸟", books[0].Title)
	assert.Equal(t, "9787544253994", books[1].ISBN)
}

func TestGetBooksByCategoryCachesResult(t *testing.T) {
	var requests int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/category/Manga", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"success": true, "data": [{"id": 1, "title": "火之鸟", "category": "Manga"}]}`))
	})

	client := newTestClient(t, mux)
	for i := 0; i < 3; i++ {
		books, err := client.GetBooksByCategory("Manga")
		require.NoError(t, err)
		assert.Len(t, books, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "同分类重复查询应命中缓存")
}

func TestSearchBooksEncodesQuery(t *testing.T) {
	var gotTitle string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/search", func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.URL.Query().Get("title")
		w.Write([]byte(`{"success": true, "data": []}`))
	})

	client := newTestClient(t, mux)
	books, err := client.SearchBooks("雾山 五行")
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Equal(t, "雾山 五行", gotTitle)
}

func TestGetBookByIDDedupesConcurrentFetches(t *testing.T) {
	var requests int32
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		<-release
		w.Write([]byte(`{"success": true, "data": {"id": 1, "title": "火之鸟"}}`))
	})

	client := newTestClient(t, mux)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			book, err := client.GetBookByID(1)
			assert.NoError(t, err)
			assert.Equal(t, "火之鸟", book.Title)
		}()
	}
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&requests), int32(2), "并发同 ID 查询应被合并")

	// 后续查询直接命中缓存
	before := atomic.LoadInt32(&requests)
	_, err := client.GetBookByID(1)
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt32(&requests))
}

func TestGetBookByIDNotFound(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusNotFound, `{"success": false, "message": "图书不存在"}`))

	_, err := client.GetBookByID(404)
	require.Error(t, err)
	assert.Equal(t, "图书不存在", err.Error())
}

func TestCreateBookInvalidatesCaches(t *testing.T) {
	var categoryRequests int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books/category/Manga", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&categoryRequests, 1)
		w.Write([]byte(`{"success": true, "data": []}`))
	})
	mux.HandleFunc("POST /api/books", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"id": 3, "title": "新书", "category": "Manga"}}`))
	})

	client := newTestClient(t, mux)
	_, err := client.GetBooksByCategory("Manga")
	require.NoError(t, err)
	_, err = client.GetBooksByCategory("Manga")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&categoryRequests))

	created, err := client.CreateBook(model.Book{Title: "新书", Author: "someone", Category: "Manga"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	// 创建后缓存失效，再查询要打到后端
	_, err = client.GetBooksByCategory("Manga")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&categoryRequests))
}
