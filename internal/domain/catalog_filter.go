package domain

import (
	"slices"
	"strings"
)

// SortOption — ключ сортировки каталога.
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
)

// AllCategories — значение фильтра категории "все категории".
const AllCategories = "All"

// FilterState параметры выдачи каталога.
type FilterState struct {
	Query    string
	Category string
	Sort     SortOption
}

// ParseSortOption разбирает ключ сортировки. Пустая строка означает newest.
func ParseSortOption(s string) (SortOption, bool) {
	switch SortOption(s) {
	case "", SortNewest:
		return SortNewest, true
	case SortPriceAsc:
		return SortPriceAsc, true
	case SortPriceDesc:
		return SortPriceDesc, true
	default:
		return "", false
	}
}

// FilterProducts отбирает товары по запросу и категории и стабильно сортирует их.
// Входной срез не изменяется. Неизвестный ключ сортировки сохраняет исходный порядок.
func FilterProducts(products []Product, state FilterState) []Product {
	query := strings.ToLower(state.Query)
	category := state.Category
	if category == "" {
		category = AllCategories
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			continue
		}
		if category != AllCategories && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	switch state.Sort {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b Product) int {
			return boolRank(b.IsNew) - boolRank(a.IsNew)
		})
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	}

	return out
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
