package defillama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apylist/apylist/internal/httpx"
	"github.com/apylist/apylist/internal/model"
)

func TestFetchMapsRecords(t *testing.T) {
	var gotCacheControl string
	mux := http.NewServeMux()
	mux.HandleFunc("/pools", func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		_, _ = w.Write([]byte(`{
			"status":"success",
			"data":[
				{"symbol":"USDC","project":"aave-v3","chain":"Ethereum","stablecoin":true,"apy":0.0512,"tvlUsd":1000000,"ilRisk":"no","exposure":"single"},
				{"symbol":"ETH-USDC","project":"uniswap-v3","chain":"Base","stablecoin":false,"apy":0.2,"tvlUsd":50000,"ilRisk":"yes","exposure":"multi"}
			]
		}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(httpx.New(2*time.Second, 0), srv.URL, nil)
	snap := c.Fetch(context.Background())
	if snap.Status != model.SourceOK {
		t.Fatalf("expected ok snapshot, got %+v", snap)
	}
	if gotCacheControl != "no-store" {
		t.Fatalf("expected no-store request header, got %q", gotCacheControl)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(snap.Items))
	}

	first := snap.Items[0]
	if first.ID != 1 || first.Name != "USDC Yield" || first.Provider != "aave-v3 (Ethereum)" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Type != model.TypeStablecoin || first.Risk != "low" {
		t.Fatalf("unexpected classification: %+v", first)
	}
	if first.APY != 5.12 {
		t.Fatalf("expected apy 5.12, got %v", first.APY)
	}

	second := snap.Items[1]
	if second.ID != 2 || second.Type != model.TypeCrypto || second.Risk != "high" {
		t.Fatalf("unexpected mapping: %+v", second)
	}
	if second.APY != 20 {
		t.Fatalf("expected apy 20, got %v", second.APY)
	}
}

func TestFetchFailsOpenToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(httpx.New(2*time.Second, 0), srv.URL, nil)
	snap := c.Fetch(context.Background())
	if snap.Status != model.SourceFailed {
		t.Fatalf("expected failed snapshot, got %+v", snap)
	}
	if snap.Items == nil || len(snap.Items) != 0 {
		t.Fatalf("expected empty item slice, got %+v", snap.Items)
	}
}

func TestMapRecordInvariants(t *testing.T) {
	neg := -0.03
	item := mapRecord(0, poolRecord{Symbol: "WETH", Project: "p", Chain: "c", APY: &neg})
	if item.APY != 0 {
		t.Fatalf("negative apy must clamp to 0, got %v", item.APY)
	}
	item = mapRecord(4, poolRecord{Symbol: "X", Project: "p", Chain: "c"})
	if item.ID != 5 || item.APY != 0 || item.MinDeposit != 0 {
		t.Fatalf("unexpected defaults: %+v", item)
	}
}
