package out

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/apylist/apylist/internal/config"
	"github.com/apylist/apylist/internal/model"
)

func TestRenderJSONSelectResultsOnly(t *testing.T) {
	env := model.Envelope{
		Version: model.EnvelopeVersion,
		Success: true,
		Data:    []map[string]any{{"apy": 5.12, "risk": "low"}},
		Meta:    model.EnvelopeMeta{Timestamp: time.Now()},
	}
	settings := config.Settings{OutputMode: "json", SelectFields: []string{"apy"}, ResultsOnly: true}
	var buf bytes.Buffer
	if err := Render(&buf, env, settings); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if len(out) != 1 || out[0]["apy"].(float64) != 5.12 {
		t.Fatalf("unexpected output: %s", buf.String())
	}
	if _, ok := out[0]["risk"]; ok {
		t.Fatalf("field projection failed: %s", buf.String())
	}
}

func TestRenderPlain(t *testing.T) {
	env := model.Envelope{
		Version: model.EnvelopeVersion,
		Success: true,
		Data:    []map[string]any{{"name": "USDC Yield", "apy": 5}},
		Meta:    model.EnvelopeMeta{Timestamp: time.Now()},
	}
	settings := config.Settings{OutputMode: "plain", ResultsOnly: true}
	var buf bytes.Buffer
	if err := Render(&buf, env, settings); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "name=USDC Yield") {
		t.Fatalf("unexpected plain output: %s", buf.String())
	}
}

func TestRenderFullEnvelope(t *testing.T) {
	env := model.Envelope{
		Version: model.EnvelopeVersion,
		Success: true,
		Data:    map[string]any{"totalItems": 2},
		Meta:    model.EnvelopeMeta{Timestamp: time.Now(), Source: model.SourceOK},
	}
	var buf bytes.Buffer
	if err := Render(&buf, env, config.Settings{OutputMode: "json"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var round model.Envelope
	if err := json.Unmarshal(buf.Bytes(), &round); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if !round.Success || round.Meta.Source != model.SourceOK {
		t.Fatalf("unexpected envelope: %s", buf.String())
	}
}
