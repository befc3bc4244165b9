package directory

import (
	"net/url"
	"strconv"
	"strings"
)

// Defaults for query parameters. MaxAPY/MaxTVL use 0 as the "no upper bound"
// sentinel everywhere downstream.
const (
	DefaultMinAPY = 0
	DefaultMaxAPY = 15
	DefaultMinTVL = 0
	DefaultMaxTVL = 0

	SortByAPY  = "apy"
	SortByTVL  = "tvl"
	SortByName = "name"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params is one parsed directory query. All fields carry their documented
// defaults; the pipeline itself never sees malformed input.
type Params struct {
	Search     string
	MinAPY     float64
	MaxAPY     float64
	MinTVL     float64
	MaxTVL     float64
	MinDeposit float64
	Risk       []string
	Attributes []string
	Categories []string
	SortBy     string
	SortOrder  string
	Chains     []string
	Page       int
}

// DefaultParams returns the parameter set for a bare request. The risk set
// defaults to empty, which the filter stage treats as unfiltered.
func DefaultParams() Params {
	return Params{
		MinAPY:    DefaultMinAPY,
		MaxAPY:    DefaultMaxAPY,
		MinTVL:    DefaultMinTVL,
		MaxTVL:    DefaultMaxTVL,
		SortBy:    SortByAPY,
		SortOrder: SortDesc,
		Page:      1,
	}
}

// ParseValues derives Params from URL query state. Unparseable numerics
// coerce to their defaults; this boundary coercion is what keeps the
// pipeline total.
func ParseValues(values url.Values) Params {
	p := DefaultParams()

	p.Search = strings.TrimSpace(values.Get("search"))
	p.MinAPY = parseFloat(values.Get("minApy"), DefaultMinAPY)
	p.MaxAPY = parseFloat(values.Get("maxApy"), DefaultMaxAPY)
	p.MinTVL = parseFloat(values.Get("minTvl"), DefaultMinTVL)
	p.MaxTVL = parseFloat(values.Get("maxTvl"), DefaultMaxTVL)
	p.MinDeposit = parseFloat(values.Get("minDeposit"), 0)
	p.Risk = cleanList(values["risk"])
	p.Attributes = cleanList(values["attributes"])
	p.Categories = cleanList(values["categories"])
	p.Chains = cleanList(values["chains"])

	switch values.Get("sortBy") {
	case SortByTVL:
		p.SortBy = SortByTVL
	case SortByName:
		p.SortBy = SortByName
	case SortByAPY, "":
		p.SortBy = SortByAPY
	default:
		p.SortBy = SortByName
	}
	if values.Get("sortOrder") == SortAsc {
		p.SortOrder = SortAsc
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 1 {
		p.Page = page
	}

	return p
}

func parseFloat(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
