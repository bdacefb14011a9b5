package publicapi

import "encoding/json"

// RecentlyViewedCap bounds the recently-viewed product list.
const RecentlyViewedCap = 10

// PushRecentlyViewed prepends a product ID, deduplicating and keeping the
// list most-recent-first, truncated to max entries.
func PushRecentlyViewed(list []uint, productID uint, max int) []uint {
	out := make([]uint, 0, len(list)+1)
	out = append(out, productID)
	for _, id := range list {
		if id == productID {
			continue
		}
		out = append(out, id)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// AddFavorite appends a product ID if not already present.
func AddFavorite(list []uint, productID uint) []uint {
	for _, id := range list {
		if id == productID {
			return list
		}
	}
	return append(list, productID)
}

// RemoveFavorite drops a product ID; removing a missing ID is a no-op.
func RemoveFavorite(list []uint, productID uint) []uint {
	out := list[:0]
	for _, id := range list {
		if id != productID {
			out = append(out, id)
		}
	}
	return out
}

func decodeIDList(raw string) []uint {
	var list []uint
	if raw == "" {
		return list
	}
	_ = json.Unmarshal([]byte(raw), &list)
	return list
}

func encodeIDList(list []uint) string {
	if list == nil {
		list = []uint{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
