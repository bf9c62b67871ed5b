package app

import (
	"fmt"
	"strings"

	"github.com/parisfoot/idfplayers/internal/dataset"
)

// datasetCard renders the registry dataset card: YAML front matter the hub
// parses for discovery, followed by a short human description.
func datasetCard(s dataset.Summary) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("language:\n- fr\n")
	b.WriteString("pretty_name: Professional footballers born in Île-de-France\n")
	b.WriteString("tags:\n- football\n- wikidata\n- ile-de-france\n")
	b.WriteString("---\n\n")

	b.WriteString("# Professional footballers born in Île-de-France\n\n")
	b.WriteString("Professional footballers born in the eight départements of the\n")
	b.WriteString("Île-de-France région, collected from Wikidata and enriched with\n")
	b.WriteString("diaspora-region and dual-nationality classification.\n\n")

	fmt.Fprintf(&b, "- %d players (%d dual nationals)\n", s.Total, s.Dual)
	b.WriteString("- formats: CSV, Parquet, JSONL (identical content)\n")
	fmt.Fprintf(&b, "- run `%s`, generated %s\n", s.RunID, s.GeneratedAt.Format("2006-01-02"))
	if len(s.Missing) > 0 {
		fmt.Fprintf(&b, "- incomplete: no capture for départements %s\n",
			strings.Join(s.Missing, ", "))
	}
	b.WriteString("\nSee `SUMMARY.md` for per-département and per-region counts.\n")

	return b.String()
}
