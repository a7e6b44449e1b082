package localcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/hanashi/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var sampleBooks = []model.Book{
	{ID: 10, Title: "火之鸟", Author: "手冢治虫", Category: "Manga"},
	{ID: 11, Title: "神之塔", Author: "SIU", Category: "Manhwa"},
	{ID: 12, Title: "百年孤独", Author: "马尔克斯", Category: "Libro"},
}

func TestSaveBooksUpsertsByBookID(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SaveBooks(sampleBooks))
	books, err := store.All()
	require.NoError(t, err)
	assert.Len(t, books, 3)

	// 同 BookID 再存一次是覆盖，不是追加
	updated := []model.Book{{ID: 10, Title: "火之鸟（新装版）", Author: "手冢治虫", Category: "Manga"}}
	require.NoError(t, store.SaveBooks(updated))

	books, err = store.All()
	require.NoError(t, err)
	assert.Len(t, books, 3)
	for _, b := range books {
		if b.ID == 10 {
			assert.Equal(t, "火之鸟（新装版）", b.Title)
		}
	}
}

func TestByCategory(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks))

	manga, err := store.ByCategory("Manga")
	require.NoError(t, err)
	require.Len(t, manga, 1)
	assert.Equal(t, "火之鸟", manga[0].Title)

	none, err := store.ByCategory("Donghua")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaveFavoritesSyncsFlags(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks))

	favorites := []model.Favorite{
		{ID: 1, BookID: 10, Book: &sampleBooks[0], IsRead: true},
		{ID: 2, BookID: 11, Book: &sampleBooks[1]},
	}
	require.NoError(t, store.SaveFavorites(favorites))

	items, err := store.Library()
	require.NoError(t, err)
	require.Len(t, items, 2)

	byBook := map[int64]MediaItem{}
	for _, it := range items {
		byBook[it.BookID] = it
	}
	assert.True(t, byBook[10].IsRead)
	assert.False(t, byBook[11].IsRead)

	// 取消一条收藏后重新同步，标记要被清掉
	require.NoError(t, store.SaveFavorites(favorites[1:]))
	items, err = store.Library()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].BookID)
}

func TestSaveFavoritesInsertsUnknownBook(t *testing.T) {
	store := newStore(t)

	// 快照里还没有这本书，收藏同步要顺带补进目录
	book := model.Book{ID: 20, Title: "新条目", Category: "Manga"}
	require.NoError(t, store.SaveFavorites([]model.Favorite{{ID: 1, BookID: 20, Book: &book}}))

	items, err := store.Library()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "新条目", items[0].Title)
}

func TestClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks))

	require.NoError(t, store.Clear())
	books, err := store.All()
	require.NoError(t, err)
	assert.Empty(t, books)
}
