package analytics

import (
	"encoding/json"
	"testing"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
)

func TestBuildLeadStats_ZeroLeads(t *testing.T) {
	stats := BuildLeadStats(0, nil, nil)
	if stats.Total != 0 {
		t.Fatalf("total: got=%d want=0", stats.Total)
	}
	for _, s := range leads.Statuses {
		n, ok := stats.ByStatus[s]
		if !ok {
			t.Fatalf("status %q missing from by_status", s)
		}
		if n != 0 {
			t.Fatalf("status %q: got=%d want=0", s, n)
		}
	}
	if len(stats.BySource) != 0 {
		t.Fatalf("by_source should be empty, got %v", stats.BySource)
	}
}

func TestBuildLeadStats_SumsToTotal(t *testing.T) {
	stats := BuildLeadStats(6,
		map[string]int64{"new": 3, "contacted": 2, "converted": 1},
		map[string]int64{"hero-form": 4, "": 1, "legacy-banner": 1},
	)
	var sum int64
	for _, n := range stats.ByStatus {
		sum += n
	}
	if sum != stats.Total {
		t.Fatalf("status counts sum to %d, total is %d", sum, stats.Total)
	}
	if stats.New != 3 || stats.Contacted != 2 || stats.Converted != 1 {
		t.Fatalf("flattened counts wrong: %+v", stats)
	}
	if stats.BySource["unspecified"] != 1 || stats.BySource["legacy-banner"] != 1 || stats.BySource["hero-form"] != 4 {
		t.Fatalf("unexpected by_source: %v", stats.BySource)
	}
}

func TestRankModels_TieBreaksByFirstSeen(t *testing.T) {
	got := RankModels([]string{"Nivus", "Golf GTI", "T-Cross", "Golf GTI", "T-Cross", "Nivus", "Polo Track", ""}, 3)
	want := []ModelCount{{"Nivus", 2}, {"Golf GTI", 2}, {"T-Cross", 2}}
	if len(got) != len(want) {
		t.Fatalf("len: got=%d want=%d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestRankModels_DefaultLimit(t *testing.T) {
	models := []string{"a", "b", "c", "d", "e", "f", "f"}
	got := RankModels(models, 0)
	if len(got) != DefaultPopularCarsLimit {
		t.Fatalf("len: got=%d want=%d", len(got), DefaultPopularCarsLimit)
	}
	if got[0].Model != "f" || got[0].Count != 2 {
		t.Fatalf("top model: got=%+v", got[0])
	}
}

func TestModelCount_MarshalJSONKeepsLegacyID(t *testing.T) {
	raw, err := json.Marshal([]ModelCount{{Model: "Nivus", Count: 3}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"_id":"Nivus","model":"Nivus","count":3}]`
	if string(raw) != want {
		t.Fatalf("unexpected json: got=%s want=%s", raw, want)
	}
}
