package directory

import "testing"

func linkValues(links []PageLink) []any {
	out := make([]any, 0, len(links))
	for _, l := range links {
		if l.Kind == LinkEllipsis {
			out = append(out, "...")
			continue
		}
		out = append(out, l.Value)
	}
	return out
}

func TestBuildPageLinksMiddle(t *testing.T) {
	got := BuildPageLinks(5, 10)
	want := []any{1, "...", 4, 5, 6, "...", 10}
	vals := linkValues(got.Links)
	if len(vals) != len(want) {
		t.Fatalf("expected %v, got %v", want, vals)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, vals)
		}
	}
	for _, l := range got.Links {
		if l.Kind == LinkPage && l.Active != (l.Value == 5) {
			t.Fatalf("wrong active flag on %+v", l)
		}
	}
	if !got.PrevEnabled || !got.NextEnabled {
		t.Fatalf("both controls should be enabled: %+v", got)
	}
}

func TestBuildPageLinksEdges(t *testing.T) {
	got := BuildPageLinks(1, 1)
	vals := linkValues(got.Links)
	if len(vals) != 1 || vals[0] != 1 {
		t.Fatalf("single page expected, got %v", vals)
	}
	if got.PrevEnabled || got.NextEnabled {
		t.Fatalf("controls must be disabled on a single page: %+v", got)
	}

	got = BuildPageLinks(1, 5)
	vals = linkValues(got.Links)
	want := []any{1, 2, "...", 5}
	if len(vals) != len(want) {
		t.Fatalf("expected %v, got %v", want, vals)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, vals)
		}
	}
	if got.PrevEnabled || !got.NextEnabled {
		t.Fatalf("unexpected control state: %+v", got)
	}

	got = BuildPageLinks(5, 5)
	vals = linkValues(got.Links)
	want = []any{1, "...", 4, 5}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, vals)
		}
	}
	if !got.PrevEnabled || got.NextEnabled {
		t.Fatalf("unexpected control state: %+v", got)
	}
}

func TestBuildPageLinksEmpty(t *testing.T) {
	got := BuildPageLinks(1, 0)
	if len(got.Links) != 0 {
		t.Fatalf("expected no links for empty result, got %+v", got.Links)
	}
	if got.PrevEnabled || got.NextEnabled {
		t.Fatalf("controls must be disabled: %+v", got)
	}
}
