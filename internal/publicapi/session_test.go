package publicapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushRecentlyViewedPrepends(t *testing.T) {
	list := PushRecentlyViewed([]uint{3, 2, 1}, 4, RecentlyViewedCap)
	assert.Equal(t, []uint{4, 3, 2, 1}, list)
}

func TestPushRecentlyViewedDeduplicates(t *testing.T) {
	list := PushRecentlyViewed([]uint{3, 2, 1}, 2, RecentlyViewedCap)
	assert.Equal(t, []uint{2, 3, 1}, list)
}

func TestPushRecentlyViewedCaps(t *testing.T) {
	list := []uint{}
	for id := uint(1); id <= 15; id++ {
		list = PushRecentlyViewed(list, id, RecentlyViewedCap)
	}
	assert.Len(t, list, RecentlyViewedCap)
	assert.Equal(t, uint(15), list[0])
	assert.Equal(t, uint(6), list[len(list)-1])
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	list := AddFavorite(nil, 7)
	list = AddFavorite(list, 7)
	assert.Equal(t, []uint{7}, list)
}

func TestRemoveFavoriteMissingIsNoOp(t *testing.T) {
	list := RemoveFavorite([]uint{1, 2}, 9)
	assert.Equal(t, []uint{1, 2}, list)

	list = RemoveFavorite(list, 1)
	assert.Equal(t, []uint{2}, list)
}

func TestIDListRoundTrip(t *testing.T) {
	assert.Equal(t, "[]", encodeIDList(nil))
	assert.Empty(t, decodeIDList(""))
	assert.Equal(t, []uint{1, 2, 3}, decodeIDList(encodeIDList([]uint{1, 2, 3})))
}
