package directory

import (
	"fmt"
	"net/url"
	"reflect"
	"testing"

	"github.com/apylist/apylist/internal/model"
)

func syntheticItems(n int) []model.Item {
	items := make([]model.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.Item{
			ID:       i + 1,
			Name:     fmt.Sprintf("TOKEN%02d Yield", i),
			Provider: fmt.Sprintf("project%02d (Ethereum)", i),
			Type:     model.TypeCrypto,
			APY:      float64(i),
			Risk:     "low",
			TVLUSD:   float64(i) * 1000,
			Chain:    "Ethereum",
			Project:  fmt.Sprintf("project%02d", i),
		})
	}
	return items
}

func TestRunPaginatesAscendingAPY(t *testing.T) {
	items := syntheticItems(25)
	params := DefaultParams()
	params.MaxAPY = 0 // unbounded
	params.SortBy = SortByAPY
	params.SortOrder = SortAsc
	params.Page = 2

	res := Run(items, params)
	if res.TotalItems != 25 || res.TotalPages != 2 {
		t.Fatalf("unexpected totals: %+v", res)
	}
	if len(res.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(res.Items))
	}
	for i, item := range res.Items {
		if item.APY != float64(20+i) {
			t.Fatalf("expected apy %d at index %d, got %v", 20+i, i, item.APY)
		}
	}
}

func TestRunSortDescendingIsNonIncreasing(t *testing.T) {
	items := syntheticItems(25)
	params := DefaultParams()
	params.MaxAPY = 0

	res := Run(items, params)
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].APY > res.Items[i-1].APY {
			t.Fatalf("apy values not non-increasing at %d: %v > %v", i, res.Items[i].APY, res.Items[i-1].APY)
		}
	}
}

func TestRunIsIdempotentAndPure(t *testing.T) {
	items := syntheticItems(10)
	before := make([]model.Item, len(items))
	copy(before, items)

	params := DefaultParams()
	params.MaxAPY = 0
	first := Run(items, params)
	second := Run(items, params)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pipeline not idempotent: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(items, before) {
		t.Fatal("pipeline mutated its input")
	}
}

func TestRunPageBeyondEndIsEmpty(t *testing.T) {
	items := syntheticItems(25)
	params := DefaultParams()
	params.MaxAPY = 0
	params.Page = 9

	res := Run(items, params)
	if len(res.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(res.Items))
	}
	if res.TotalItems != 25 || res.TotalPages != 2 {
		t.Fatalf("metadata must be unchanged for out-of-range page: %+v", res)
	}
}

func TestMaxAPYZeroIsUnbounded(t *testing.T) {
	item := model.Item{Name: "X Yield", APY: 14, Risk: "low"}

	params := DefaultParams()
	params.MaxAPY = 0
	if !matches(item, params) {
		t.Fatal("apy 14 must pass with maxApy sentinel 0")
	}

	params.MaxAPY = 10
	if matches(item, params) {
		t.Fatal("apy 14 must be excluded with maxApy 10")
	}
}

func TestMaxTVLZeroIsUnbounded(t *testing.T) {
	item := model.Item{Name: "X Yield", APY: 1, TVLUSD: 5_000_000, Risk: "low"}

	params := DefaultParams()
	if !matches(item, params) {
		t.Fatal("tvl must pass with maxTvl sentinel 0")
	}
	params.MaxTVL = 1_000_000
	if matches(item, params) {
		t.Fatal("tvl 5M must be excluded with maxTvl 1M")
	}
}

func TestSearchMatchesNameAndProviderCaseFolded(t *testing.T) {
	items := []model.Item{
		{ID: 1, Name: "USDC Yield", Provider: "aave-v3 (Ethereum)", APY: 1},
		{ID: 2, Name: "ETH Yield", Provider: "lido (Ethereum)", APY: 1},
	}

	params := DefaultParams()
	params.Search = "usdc"
	res := Run(items, params)
	if len(res.Items) != 1 || res.Items[0].Name != "USDC Yield" {
		t.Fatalf("expected only USDC Yield, got %+v", res.Items)
	}

	params.Search = "LIDO"
	res = Run(items, params)
	if len(res.Items) != 1 || res.Items[0].ID != 2 {
		t.Fatalf("expected provider match, got %+v", res.Items)
	}
}

func TestRiskAndChainSetFilters(t *testing.T) {
	items := []model.Item{
		{ID: 1, Name: "A Yield", APY: 1, Risk: "low", Chain: "Ethereum"},
		{ID: 2, Name: "B Yield", APY: 1, Risk: "high", Chain: "Base"},
	}

	params := DefaultParams()
	res := Run(items, params)
	if res.TotalItems != 2 {
		t.Fatalf("empty sets must be unfiltered, got %+v", res)
	}

	params.Risk = []string{"high"}
	res = Run(items, params)
	if res.TotalItems != 1 || res.Items[0].ID != 2 {
		t.Fatalf("risk filter failed: %+v", res.Items)
	}

	params = DefaultParams()
	params.Chains = []string{"Ethereum"}
	res = Run(items, params)
	if res.TotalItems != 1 || res.Items[0].ID != 1 {
		t.Fatalf("chain filter failed: %+v", res.Items)
	}
}

func TestSortStabilityOnEqualKeys(t *testing.T) {
	items := []model.Item{
		{ID: 1, Name: "A Yield", APY: 5},
		{ID: 2, Name: "B Yield", APY: 5},
		{ID: 3, Name: "C Yield", APY: 5},
	}
	params := DefaultParams()
	params.SortOrder = SortAsc

	res := Run(items, params)
	for i, item := range res.Items {
		if item.ID != i+1 {
			t.Fatalf("equal keys must retain input order, got %+v", res.Items)
		}
	}
}

func TestSortByName(t *testing.T) {
	items := []model.Item{
		{ID: 1, Name: "zeta Yield", APY: 1},
		{ID: 2, Name: "Alpha Yield", APY: 2},
	}
	params := DefaultParams()
	params.SortBy = SortByName
	params.SortOrder = SortAsc

	res := Run(items, params)
	if res.Items[0].Name != "Alpha Yield" {
		t.Fatalf("expected case-insensitive collation order, got %+v", res.Items)
	}
}

func TestParseValuesDefaultsAndCoercion(t *testing.T) {
	p := ParseValues(url.Values{})
	if p.MinAPY != 0 || p.MaxAPY != 15 || p.MinTVL != 0 || p.MaxTVL != 0 {
		t.Fatalf("unexpected numeric defaults: %+v", p)
	}
	if p.SortBy != SortByAPY || p.SortOrder != SortDesc || p.Page != 1 {
		t.Fatalf("unexpected sort/page defaults: %+v", p)
	}
	if len(p.Risk) != 0 || len(p.Chains) != 0 {
		t.Fatalf("expected empty sets, got %+v", p)
	}

	p = ParseValues(url.Values{
		"minApy":    {"abc"},
		"maxApy":    {"nope"},
		"page":      {"-3"},
		"sortOrder": {"sideways"},
	})
	if p.MinAPY != 0 || p.MaxAPY != 15 || p.Page != 1 || p.SortOrder != SortDesc {
		t.Fatalf("malformed values must coerce to defaults: %+v", p)
	}

	p = ParseValues(url.Values{
		"search":    {" usdc "},
		"maxApy":    {"0"},
		"risk":      {"low", "medium"},
		"chains":    {"Ethereum"},
		"sortBy":    {"tvl"},
		"sortOrder": {"asc"},
		"page":      {"3"},
	})
	if p.Search != "usdc" || p.MaxAPY != 0 || p.Page != 3 {
		t.Fatalf("unexpected parse: %+v", p)
	}
	if len(p.Risk) != 2 || p.SortBy != SortByTVL || p.SortOrder != SortAsc {
		t.Fatalf("unexpected parse: %+v", p)
	}
}
