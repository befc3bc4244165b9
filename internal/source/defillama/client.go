// Package defillama fetches the full yield-pool list from the DeFiLlama
// yields API and normalizes it into directory items.
package defillama

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	apperr "github.com/apylist/apylist/internal/errors"
	"github.com/apylist/apylist/internal/httpx"
	"github.com/apylist/apylist/internal/model"
	"github.com/apylist/apylist/internal/risk"
	"go.uber.org/zap"
)

const defaultYieldsBase = "https://yields.llama.fi"

type Client struct {
	http       *httpx.Client
	yieldsBase string
	log        *zap.Logger
	now        func() time.Time
}

// New builds a pool source. An empty base uses the public yields API. The
// upstream call is never retried and never cached; a slow or failing upstream
// degrades to an empty directory.
func New(httpClient *httpx.Client, base string, log *zap.Logger) *Client {
	if base == "" {
		base = defaultYieldsBase
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:       httpClient,
		yieldsBase: base,
		log:        log,
		now:        time.Now,
	}
}

type poolsEnvelope struct {
	Status string       `json:"status"`
	Data   []poolRecord `json:"data"`
}

type poolRecord struct {
	Symbol     string   `json:"symbol"`
	Project    string   `json:"project"`
	Chain      string   `json:"chain"`
	Stablecoin bool     `json:"stablecoin"`
	APY        *float64 `json:"apy"`
	TVLUSD     *float64 `json:"tvlUsd"`
	ILRisk     string   `json:"ilRisk"`
	Exposure   string   `json:"exposure"`

	APYPct1D    *float64    `json:"apyPct1D"`
	APYPct7D    *float64    `json:"apyPct7D"`
	APYPct30D   *float64    `json:"apyPct30D"`
	APYMean30D  *float64    `json:"apyMean30d"`
	VolumeUSD7D *float64    `json:"volumeUsd7d"`
	Predictions *prediction `json:"predictions"`
}

type prediction struct {
	PredictedClass       string  `json:"predictedClass"`
	PredictedProbability float64 `json:"predictedProbability"`
	BinnedConfidence     float64 `json:"binnedConfidence"`
}

// Fetch returns one immutable snapshot of the directory. Transport and parse
// failures are logged and reported as an empty, failed snapshot rather than
// an error: the directory renders as "no results" instead of breaking.
func (c *Client) Fetch(ctx context.Context) model.Snapshot {
	items, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("pool fetch failed, serving empty directory", zap.Error(err))
		return model.Snapshot{Items: []model.Item{}, Status: model.SourceFailed, FetchedAt: c.now().UTC()}
	}
	return model.Snapshot{Items: items, Status: model.SourceOK, FetchedAt: c.now().UTC()}
}

func (c *Client) fetch(ctx context.Context) ([]model.Item, error) {
	url := c.yieldsBase + "/pools"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "build pools request", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	var env poolsEnvelope
	if _, err := c.http.DoJSON(ctx, req, &env); err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(env.Data))
	for i, p := range env.Data {
		items = append(items, mapRecord(i, p))
	}
	return items, nil
}

// mapRecord normalizes one raw pool. IDs are positional and stable only
// within a single fetch.
func mapRecord(index int, p poolRecord) model.Item {
	itemType := model.TypeCrypto
	if p.Stablecoin {
		itemType = model.TypeStablecoin
	}
	return model.Item{
		ID:         index + 1,
		Name:       fmt.Sprintf("%s Yield", p.Symbol),
		Provider:   fmt.Sprintf("%s (%s)", p.Project, p.Chain),
		Type:       itemType,
		APY:        roundAPY(p.APY),
		Risk:       risk.Classify(p.ILRisk, p.Exposure),
		MinDeposit: 0,
		TVLUSD:     numOrZero(p.TVLUSD),
		Chain:      p.Chain,
		Project:    p.Project,
	}
}

// roundAPY converts the upstream APY fraction to a percentage rounded to two
// decimals, clamped at zero.
func roundAPY(v *float64) float64 {
	pct := numOrZero(v) * 100
	if pct < 0 {
		return 0
	}
	return math.Round(pct*100) / 100
}

func numOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}
