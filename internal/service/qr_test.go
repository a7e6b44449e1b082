package service

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/hanashi/internal/api"
)

func newQRFixture(t *testing.T) (*fakeBackend, *QRResolver, *FavoritesService, *int32) {
	t.Helper()
	backend := newFakeBackend()
	var requests int32
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		backend.handler().ServeHTTP(w, r)
	})
	server := httptest.NewServer(counting)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, 5*time.Second)
	sessions := NewSessionStore()
	favorites := NewFavoritesService(client, sessions)
	return backend, NewQRResolver(client, favorites), favorites, &requests
}

func TestResolveAddsBookToFavorites(t *testing.T) {
	_, qr, favorites, _ := newQRFixture(t)
	require.NoError(t, favorites.SetActiveUser(5))

	message, err := qr.Resolve("BOOK:10")
	require.NoError(t, err)
	assert.Equal(t, "《火之鸟》已加入收藏", message)
	assert.True(t, favorites.IsFavorite(10))
}

func TestResolvePrefixCaseInsensitive(t *testing.T) {
	_, qr, favorites, _ := newQRFixture(t)
	require.NoError(t, favorites.SetActiveUser(5))

	message, err := qr.Resolve("book:11")
	require.NoError(t, err)
	assert.Contains(t, message, "神之塔")
}

func TestResolveInvalidFormatsNeverTouchNetwork(t *testing.T) {
	_, qr, favorites, requests := newQRFixture(t)
	require.NoError(t, favorites.SetActiveUser(5))
	before := atomic.LoadInt32(requests)

	for _, payload := range []string{
		"MOVIE:10",  // 错误前缀
		"BOOK:abc",  // 非数字 ID
		"BOOK:-3",   // 负数 ID
		"BOOK:0",    // 零 ID
		"BOOK10",    // 缺少分隔符
		"",          // 空载荷
		":10",       // 空前缀
	} {
		_, err := qr.Resolve(payload)
		assert.ErrorIs(t, err, ErrInvalidFormat, "载荷 %q", payload)
	}

	assert.Equal(t, before, atomic.LoadInt32(requests), "格式错误不应发起任何请求")
}

func TestResolveRequiresActiveUser(t *testing.T) {
	_, qr, _, requests := newQRFixture(t)
	before := atomic.LoadInt32(requests)

	_, err := qr.Resolve("BOOK:10")
	assert.ErrorIs(t, err, ErrNoActiveUser)
	assert.Equal(t, before, atomic.LoadInt32(requests))
}

func TestResolveUnknownBook(t *testing.T) {
	_, qr, favorites, _ := newQRFixture(t)
	require.NoError(t, favorites.SetActiveUser(5))

	_, err := qr.Resolve("BOOK:404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "图书不存在")
	assert.False(t, favorites.IsFavorite(404))
}

func TestResolveTrimsIDWhitespace(t *testing.T) {
	_, qr, favorites, _ := newQRFixture(t)
	require.NoError(t, favorites.SetActiveUser(5))

	_, err := qr.Resolve("BOOK: 10")
	require.NoError(t, err)
	assert.True(t, favorites.IsFavorite(10))
}
