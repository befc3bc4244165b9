package viewstate

import (
	"path/filepath"
	"testing"
)

func TestDefaultViewModeIsGrid(t *testing.T) {
	s := New(NewMemKV(), nil)
	if got := s.ViewMode(); got != ModeGrid {
		t.Fatalf("expected grid default, got %q", got)
	}
}

func TestSetViewModeIsObservedImmediately(t *testing.T) {
	kv := NewMemKV()
	s := New(kv, nil)
	s.SetViewMode(ModeList)
	if got := s.ViewMode(); got != ModeList {
		t.Fatalf("expected list after set, got %q", got)
	}
}

func TestViewModeSurvivesReload(t *testing.T) {
	kv := NewMemKV()
	New(kv, nil).SetViewMode(ModeList)

	reloaded := New(kv, nil)
	if got := reloaded.ViewMode(); got != ModeList {
		t.Fatalf("expected persisted list, got %q", got)
	}
}

func TestCorruptViewModeFallsBackToGrid(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Set("layout-storage", []byte("sideways")); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	s := New(kv, nil)
	if got := s.ViewMode(); got != ModeGrid {
		t.Fatalf("expected grid for corrupt entry, got %q", got)
	}
}

func TestInvalidModeIgnored(t *testing.T) {
	s := New(NewMemKV(), nil)
	s.SetViewMode("diagonal")
	if got := s.ViewMode(); got != ModeGrid {
		t.Fatalf("invalid mode must be ignored, got %q", got)
	}
}

func TestConsentRoundTrip(t *testing.T) {
	kv := NewMemKV()
	s := New(kv, nil)
	if got := s.Consent(); got != "" {
		t.Fatalf("expected no consent choice yet, got %q", got)
	}
	s.SetConsent(ConsentDeclined)

	reloaded := New(kv, nil)
	if got := reloaded.Consent(); got != ConsentDeclined {
		t.Fatalf("expected persisted decline, got %q", got)
	}
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	kv, err := OpenSQLite(filepath.Join(tmp, "state.db"), filepath.Join(tmp, "state.lock"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set("k", []byte("v2")); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	got, ok, err := kv.Get("k")
	if err != nil || !ok || string(got) != "v2" {
		t.Fatalf("unexpected read: %q ok=%v err=%v", got, ok, err)
	}
}
