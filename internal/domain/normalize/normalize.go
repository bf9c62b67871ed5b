// Package normalize converts raw SPARQL solutions into flat player records.
//
// Conversion is tolerant by design: optional bindings that are absent yield
// empty fields, never an error. Only a row without a usable entity identifier
// is malformed, and the caller drops it with a warning.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/parisfoot/idfplayers/internal/domain/model"
)

// Row is one raw query solution flattened to variable name -> literal value.
// Absent variables are simply missing keys.
type Row map[string]string

// Binding variable names produced by the query bank.
const (
	varPlayer          = "player"
	varPlayerLabel     = "playerLabel"
	varBirthDate       = "birthDate"
	varBirthPlace      = "birthPlace"
	varBirthPlaceLabel = "birthPlaceLabel"
	varNationalities   = "nationalities"
)

// nationalitySeparator matches the GROUP_CONCAT separator in the query bank.
const nationalitySeparator = ","

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithCommuneTable replaces the default commune -> département lookup table.
func WithCommuneTable(table map[string]string) Option {
	return func(n *Normalizer) {
		if len(table) > 0 {
			n.communes = table
		}
	}
}

// Normalizer turns rows into records using an injected commune table.
type Normalizer struct {
	communes map[string]string
}

// New creates a Normalizer with the default commune table unless overridden.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{communes: defaultCommuneTable}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Record converts one row into a player record.
//
// dept is the département code pinned by a region-scoped query; when set it
// takes precedence over the commune-label fallback, so a record collected for
// one département never silently migrates to another on a label quirk.
func (n *Normalizer) Record(row Row, dept string) (model.Player, error) {
	id := ExtractQID(row[varPlayer])
	if id == "" {
		return model.Player{}, fmt.Errorf("%w: no entity identifier in row", ErrMalformedRow)
	}

	date, year := ParseDate(row[varBirthDate])

	p := model.Player{
		WikidataID:      id,
		Name:            row[varPlayerLabel],
		BirthDate:       date,
		BirthYear:       year,
		BirthplaceID:    ExtractQID(row[varBirthPlace]),
		BirthplaceLabel: row[varBirthPlaceLabel],
		Nationalities:   SplitNationalities(row[varNationalities]),
	}

	if dept != "" {
		p.BirthDepartment = dept
	} else {
		p.BirthDepartment = n.ResolveDepartment(p.BirthplaceLabel)
	}
	return p, nil
}

// ExtractQID pulls the bare QID out of a knowledge-base entity URI.
// Returns "" for anything that is not an entity URI.
func ExtractQID(uri string) string {
	idx := strings.LastIndex(uri, "/entity/Q")
	if idx == -1 {
		return ""
	}
	return uri[idx+len("/entity/"):]
}

// SplitNationalities splits the delimiter-joined aggregate field into an
// ordered list of distinct labels. Whitespace is trimmed, empty segments are
// dropped and duplicates keep their first-seen position. Labels are compared
// case-sensitively: the pipeline requests a single label language everywhere,
// so variants of the same country cannot differ by case alone.
func SplitNationalities(joined string) []string {
	if joined == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(joined, nationalitySeparator) {
		label := strings.TrimSpace(part)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// Date layouts seen in endpoint responses. Timestamps older than year 1000
// carry a leading sign.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"+2006-01-02T15:04:05Z",
	"2006-01-02",
	"+2006-01-02",
}

// ParseDate parses an endpoint date literal into an ISO calendar date and a
// birth year. Unparseable or empty input yields ("", 0); day-precision is the
// minimum the pipeline keeps.
func ParseDate(raw string) (string, int) {
	if raw == "" {
		return "", 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), t.Year()
		}
	}
	return "", 0
}
