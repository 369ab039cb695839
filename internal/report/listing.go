package report

import (
	"sort"
	"strings"

	"restopos/pkg/pagination"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the sort applied to one listing.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle returns the state after the operator picks key: the same key flips
// the direction, a new key starts descending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key {
		if s.Direction == Desc {
			return SortState{Key: key, Direction: Asc}
		}
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Desc}
}

// NewSortState builds a state from request parameters, falling back to
// descending order on def when key is unknown.
func NewSortState(key, dir string, valid map[string]bool, def string) SortState {
	if !valid[key] {
		key = def
	}
	d := Desc
	if Direction(strings.ToLower(dir)) == Asc {
		d = Asc
	}
	return SortState{Key: key, Direction: d}
}

// ItemSortKeys are the sortable columns of the item listing.
var ItemSortKeys = map[string]bool{"name": true, "category": true, "count": true, "revenue": true}

// OrderSortKeys are the sortable columns of the order listing.
var OrderSortKeys = map[string]bool{"id": true, "date": true, "total": true, "payment_method": true, "item_count": true}

// compare returns -1, 0 or 1.
type compare func(i, j int) int

func lessFor(cmp compare, dir Direction) func(i, j int) bool {
	return func(i, j int) bool {
		c := cmp(i, j)
		if dir == Asc {
			return c < 0
		}
		return c > 0
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// SortItems returns a sorted copy of items. Ties keep their input order.
func SortItems(items []ItemStat, s SortState) []ItemStat {
	out := append([]ItemStat(nil), items...)
	var cmp compare
	switch s.Key {
	case "name":
		cmp = func(i, j int) int { return compareFold(out[i].Name, out[j].Name) }
	case "category":
		cmp = func(i, j int) int { return compareFold(out[i].Category, out[j].Category) }
	case "count":
		cmp = func(i, j int) int { return out[i].Count - out[j].Count }
	default:
		cmp = func(i, j int) int { return out[i].Revenue.Cmp(out[j].Revenue) }
	}
	sort.SliceStable(out, lessFor(cmp, s.Direction))
	return out
}

// SortOrders returns a sorted copy of orders. Ties keep their input order.
func SortOrders(orders []OrderRow, s SortState) []OrderRow {
	out := append([]OrderRow(nil), orders...)
	var cmp compare
	switch s.Key {
	case "id":
		cmp = func(i, j int) int { return compareFold(out[i].ID, out[j].ID) }
	case "payment_method":
		cmp = func(i, j int) int { return compareFold(out[i].PaymentMethod, out[j].PaymentMethod) }
	case "total":
		cmp = func(i, j int) int { return out[i].Total.Cmp(out[j].Total) }
	case "item_count":
		cmp = func(i, j int) int { return out[i].ItemCount - out[j].ItemCount }
	default:
		cmp = func(i, j int) int { return out[i].Date.Compare(out[j].Date) }
	}
	sort.SliceStable(out, lessFor(cmp, s.Direction))
	return out
}

// Page returns one page of rows. Pagination is display only; aggregates are
// always computed over the full set.
func Page[T any](rows []T, page int) *pagination.PaginatedResult[T] {
	return pagination.Slice(rows, pagination.Params{Page: page, PerPage: pagination.DefaultPerPage})
}
