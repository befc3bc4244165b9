// Package directory implements the filter/sort/paginate pipeline behind the
// yield listing, plus query-parameter parsing and page-link building.
package directory

import (
	"math"
	"sort"
	"strings"

	"github.com/apylist/apylist/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed directory page size.
const PageSize = 20

// Result is one filtered, sorted page of the directory plus pagination
// metadata.
type Result struct {
	Items       []model.Item `json:"items"`
	TotalItems  int          `json:"totalItems"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
}

// RunAll applies the filter and sort stages without pagination. It is pure:
// the input slice is never mutated.
func RunAll(items []model.Item, params Params) []model.Item {
	filtered := make([]model.Item, 0, len(items))
	for _, item := range items {
		if matches(item, params) {
			filtered = append(filtered, item)
		}
	}
	sortItems(filtered, params.SortBy, params.SortOrder)
	return filtered
}

// Run applies the full pipeline to one snapshot of items. Identical input
// yields identical output. A page past the end yields an empty slice with
// metadata unchanged.
func Run(items []model.Item, params Params) Result {
	filtered := RunAll(items, params)

	totalItems := len(filtered)
	totalPages := int(math.Ceil(float64(totalItems) / float64(PageSize)))

	start := (params.Page - 1) * PageSize
	page := []model.Item{}
	if start < totalItems {
		end := start + PageSize
		if end > totalItems {
			end = totalItems
		}
		page = filtered[start:end]
	}

	return Result{
		Items:       page,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
	}
}

// matches ANDs all active filters. A max bound of exactly 0 means unbounded,
// and empty risk/chain sets mean unfiltered.
func matches(item model.Item, p Params) bool {
	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Provider), needle) {
			return false
		}
	}
	if item.APY < p.MinAPY {
		return false
	}
	if p.MaxAPY != 0 && item.APY > p.MaxAPY {
		return false
	}
	if item.TVLUSD < p.MinTVL {
		return false
	}
	if p.MaxTVL != 0 && item.TVLUSD > p.MaxTVL {
		return false
	}
	if len(p.Risk) > 0 && !containsFold(p.Risk, item.Risk) {
		return false
	}
	if len(p.Chains) > 0 && !containsFold(p.Chains, item.Chain) {
		return false
	}
	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func sortItems(items []model.Item, sortBy, sortOrder string) {
	desc := sortOrder == SortDesc

	var less func(a, b model.Item) bool
	switch sortBy {
	case SortByAPY:
		less = func(a, b model.Item) bool { return a.APY < b.APY }
	case SortByTVL:
		less = func(a, b model.Item) bool { return a.TVLUSD < b.TVLUSD }
	default:
		coll := collate.New(language.English)
		less = func(a, b model.Item) bool { return coll.CompareString(a.Name, b.Name) < 0 }
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
