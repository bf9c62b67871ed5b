package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/parisfoot/idfplayers/internal/domain/model"
)

// Summary holds the observational counts for one assembled collection. It is
// reporting only and never feeds back into record selection.
type Summary struct {
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Total       int            `json:"total_players"`
	Dual        int            `json:"dual_nationals"`
	ByDept      map[string]int `json:"by_department"`
	ByRegion    map[string]int `json:"by_diaspora_region"`
	ByCountry   map[string]int `json:"by_diaspora_country"`
	Missing     []string       `json:"missing_departments,omitempty"`
}

// Summarize computes the counts for the current collection. missing lists the
// départements that failed or were never collected; the summary states them
// explicitly rather than letting the dataset claim completeness.
func (a *Assembler) Summarize(runID string, missing []string) Summary {
	s := Summary{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Total:       len(a.players),
		ByDept:      make(map[string]int),
		ByRegion:    make(map[string]int),
		ByCountry:   make(map[string]int),
		Missing:     missing,
	}
	for _, p := range a.players {
		if p.IsDualNational {
			s.Dual++
		}
		if p.BirthDepartment != "" {
			s.ByDept[p.BirthDepartment]++
		}
		if p.DiasporaRegion != "" {
			s.ByRegion[p.DiasporaRegion]++
		}
		for _, country := range p.DiasporaCountries {
			s.ByCountry[country]++
		}
	}
	return s
}

// Markdown renders the summary as the stats file published beside the data.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("# Dataset summary\n\n")
	fmt.Fprintf(&b, "*Run %s, generated %s*\n\n", s.RunID, s.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "- Players: **%d**\n", s.Total)
	if s.Total > 0 {
		fmt.Fprintf(&b, "- Dual nationals: **%d** (%.1f%%)\n", s.Dual, pct(s.Dual, s.Total))
		diaspora := 0
		for _, n := range s.ByRegion {
			diaspora += n
		}
		fmt.Fprintf(&b, "- Diaspora background: **%d** (%.1f%%)\n", diaspora, pct(diaspora, s.Total))
	}

	b.WriteString("\n## By diaspora region\n\n| Region | Players |\n|--------|---------|\n")
	for _, kv := range sortedDesc(s.ByRegion) {
		fmt.Fprintf(&b, "| %s | %d |\n", kv.key, kv.n)
	}

	b.WriteString("\n## By département\n\n| Département | Players |\n|-------------|---------|\n")
	for _, kv := range sortedDesc(s.ByDept) {
		name := model.DepartmentNames[kv.key]
		if name == "" {
			name = kv.key
		}
		fmt.Fprintf(&b, "| %s (%s) | %d |\n", name, kv.key, kv.n)
	}

	b.WriteString("\n## Top diaspora countries\n\n| Country | Players |\n|---------|---------|\n")
	for i, kv := range sortedDesc(s.ByCountry) {
		if i >= 10 {
			break
		}
		fmt.Fprintf(&b, "| %s | %d |\n", kv.key, kv.n)
	}

	if len(s.Missing) > 0 {
		b.WriteString("\n## Missing départements\n\n")
		b.WriteString("Collection is incomplete; the following départements have no data in this run:\n\n")
		for _, dept := range s.Missing {
			name := model.DepartmentNames[dept]
			if name == "" {
				name = dept
			}
			fmt.Fprintf(&b, "- %s (%s)\n", name, dept)
		}
	}
	return b.String()
}

func pct(n, total int) float64 {
	return 100 * float64(n) / float64(total)
}

type countEntry struct {
	key string
	n   int
}

// sortedDesc orders map entries by count descending, key ascending on ties,
// so rendered tables are stable.
func sortedDesc(counts map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(counts))
	for k, n := range counts {
		entries = append(entries, countEntry{k, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].key < entries[j].key
	})
	return entries
}
