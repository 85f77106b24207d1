package analytics

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/leads"
)

// DefaultPopularCarsLimit matches the size of the dashboard's "popular cars" widget.
const DefaultPopularCarsLimit = 5

type LeadStats struct {
	Total int64 `json:"total"`
	// Flattened status counts kept for the existing dashboard frontend.
	New       int64            `json:"new"`
	Contacted int64            `json:"contacted"`
	Converted int64            `json:"converted"`
	ByStatus  map[string]int64 `json:"by_status"`
	BySource  map[string]int64 `json:"by_source"`
}

type ModelCount struct {
	Model string `json:"model"`
	Count int64  `json:"count"`
}

// MarshalJSON also writes the model under "_id", the key older dashboard builds read.
func (m ModelCount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    string `json:"_id"`
		Model string `json:"model"`
		Count int64  `json:"count"`
	}{m.Model, m.Model, m.Count})
}

type Dashboard struct {
	TotalLeads            int64        `json:"total_leads"`
	TotalPageViews        int64        `json:"total_page_views"`
	TotalFormInteractions int64        `json:"total_form_interactions"`
	PopularCars           []ModelCount `json:"popular_cars"`
}

// BuildLeadStats shapes raw group counts. Every status key is present, zero or not.
// Blank sources (records older than source normalization) are reported as unspecified;
// any other value passes through verbatim.
func BuildLeadStats(total int64, byStatus, bySource map[string]int64) *LeadStats {
	stats := &LeadStats{
		Total:    total,
		ByStatus: make(map[string]int64, len(leads.Statuses)),
		BySource: make(map[string]int64, len(bySource)),
	}
	for _, s := range leads.Statuses {
		stats.ByStatus[s] = byStatus[s]
	}
	for src, n := range bySource {
		key := strings.TrimSpace(src)
		if key == "" {
			key = leads.SourceUnspecified
		}
		stats.BySource[key] += n
	}
	stats.New = stats.ByStatus[leads.StatusNew]
	stats.Contacted = stats.ByStatus[leads.StatusContacted]
	stats.Converted = stats.ByStatus[leads.StatusConverted]
	return stats
}

// RankModels counts models in the given order and returns the n most frequent.
// Ties keep first-seen order so identical inputs always rank identically.
func RankModels(models []string, n int) []ModelCount {
	if n <= 0 {
		n = DefaultPopularCarsLimit
	}
	index := map[string]int{}
	ranked := make([]ModelCount, 0, 8)
	for _, m := range models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if i, ok := index[m]; ok {
			ranked[i].Count++
			continue
		}
		index[m] = len(ranked)
		ranked = append(ranked, ModelCount{Model: m, Count: 1})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
