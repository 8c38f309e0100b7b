package styles

import (
	"strings"
	"testing"
)

func TestResolveUnknownFallsBackToNone(t *testing.T) {
	none := Resolve(None)
	if none.FontFamily != "inherit" {
		t.Fatalf("Resolve(none).FontFamily = %q, want inherit", none.FontFamily)
	}

	for _, id := range []string{"", "unknown", "CAVEAT", "comic-sans"} {
		if got := Resolve(id); got != none {
			t.Errorf("Resolve(%q) = %+v, want %+v", id, got, none)
		}
	}
}

func TestResolveKnownStyles(t *testing.T) {
	tests := []struct {
		id         string
		wantName   string
		wantPrefix string
	}{
		{"caveat", "Casual Handwriting", `"Caveat"`},
		{"dancing-script", "Elegant Script", `"Dancing Script"`},
		{"rock-salt", "Chalk Style", `"Rock Salt"`},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			d := Resolve(tt.id)
			if d.ID != tt.id || d.Name != tt.wantName {
				t.Errorf("Resolve(%q) = %+v", tt.id, d)
			}
			if !strings.HasPrefix(d.FontFamily, tt.wantPrefix) {
				t.Errorf("FontFamily = %q, want prefix %q", d.FontFamily, tt.wantPrefix)
			}
			if !strings.HasSuffix(d.FontFamily, "cursive") {
				t.Errorf("FontFamily = %q, should end with generic cursive", d.FontFamily)
			}
		})
	}
}

func TestAllIsStableCopy(t *testing.T) {
	all := All()
	if len(all) != 9 {
		t.Fatalf("len(All()) = %d, want 9", len(all))
	}
	if all[0].ID != None {
		t.Errorf("All()[0] = %q, want none first", all[0].ID)
	}

	all[0].FontFamily = "mutated"
	if Resolve(None).FontFamily != "inherit" {
		t.Error("mutating All() result must not change the table")
	}

	ids := IDs()
	for i, d := range All() {
		if ids[i] != d.ID {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], d.ID)
		}
		if !Known(d.ID) {
			t.Errorf("Known(%q) = false", d.ID)
		}
	}
	if Known("nope") {
		t.Error("Known(nope) = true")
	}
}
