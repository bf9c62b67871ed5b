// Package model contains domain models passed between layers.
package model

import "time"

// Department codes covered by the pipeline. The set is closed: a resolved
// birth département is always one of these, anything else stays unresolved.
var DepartmentCodes = []string{"75", "77", "78", "91", "92", "93", "94", "95"}

// DepartmentNames maps a département code to its display name.
var DepartmentNames = map[string]string{
	"75": "Paris",
	"77": "Seine-et-Marne",
	"78": "Yvelines",
	"91": "Essonne",
	"92": "Hauts-de-Seine",
	"93": "Seine-Saint-Denis",
	"94": "Val-de-Marne",
	"95": "Val-d'Oise",
}

// KnownDepartment reports whether code belongs to the closed département set.
func KnownDepartment(code string) bool {
	_, ok := DepartmentNames[code]
	return ok
}

// Player is one footballer as collected from the knowledge base and
// normalized into a flat record.
//
// WikidataID is the dedup key: the assembled collection never holds two
// records with the same ID. IsDualNational, DiasporaRegion, DiasporaCountries
// and BirthYear are derived from the collected fields and are recomputed on
// every classification pass, never trusted from a previous run.
type Player struct {
	WikidataID      string   `json:"wikidata_id"`
	Name            string   `json:"name"`
	BirthDate       string   `json:"birth_date,omitempty"` // ISO date, may be empty
	BirthYear       int      `json:"birth_year,omitempty"`
	BirthplaceID    string   `json:"birthplace_id,omitempty"`
	BirthplaceLabel string   `json:"birth_city,omitempty"`
	BirthDepartment string   `json:"birth_department,omitempty"` // one of DepartmentCodes, or empty
	Nationalities   []string `json:"nationalities"`              // ordered, distinct labels

	IsDualNational    bool     `json:"is_dual_national"`
	DiasporaRegion    string   `json:"diaspora_region,omitempty"`
	DiasporaCountries []string `json:"diaspora_countries,omitempty"`
}

// Batch is the collection result for one département in one run.
type Batch struct {
	Department  string    `json:"department"`
	RunID       string    `json:"run_id"`
	CollectedAt time.Time `json:"collected_at"`
	Count       int       `json:"count"`
	Players     []Player  `json:"players"`
}
