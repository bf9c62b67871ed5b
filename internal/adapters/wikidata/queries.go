// Package wikidata holds the SPARQL adapter: query construction against the
// public endpoint and the HTTP client that executes it.
package wikidata

import (
	"bytes"
	"fmt"

	"github.com/knakk/sparql"
)

// The query bank. Départements are matched through one, two or three P131
// ("located in") hops; birthplaces nested deeper than three administrative
// levels are excluded on purpose, deeper traversal times out on the endpoint.
const queries = `
# tag: players-by-department
SELECT DISTINCT
    ?player
    ?playerLabel
    ?birthDate
    ?birthPlace
    ?birthPlaceLabel
    (GROUP_CONCAT(DISTINCT ?nationalityLabel; separator=", ") AS ?nationalities)
WHERE {
    ?player wdt:P106 wd:Q937857 .
    ?player wdt:P19 ?birthPlace .

    {
        ?birthPlace wdt:P131 wd:{{.Department}} .
    } UNION {
        ?birthPlace wdt:P131/wdt:P131 wd:{{.Department}} .
    } UNION {
        ?birthPlace wdt:P131/wdt:P131/wdt:P131 wd:{{.Department}} .
    }

    ?player wdt:P569 ?birthDate .
    FILTER(YEAR(?birthDate) >= {{.MinYear}} && YEAR(?birthDate) <= {{.MaxYear}})

    OPTIONAL {
        ?player wdt:P27 ?nationality .
        ?nationality rdfs:label ?nationalityLabel .
        FILTER(LANG(?nationalityLabel) = "{{.Lang}}")
    }

    SERVICE wikibase:label {
        bd:serviceParam wikibase:language "{{.Lang}},en" .
    }
}
GROUP BY ?player ?playerLabel ?birthDate ?birthPlace ?birthPlaceLabel
ORDER BY ?birthDate

# tag: endpoint-probe
SELECT * WHERE { ?s ?p ?o } LIMIT 1
`

// DefaultDepartmentQIDs maps département codes to their entity QIDs.
var DefaultDepartmentQIDs = map[string]string{
	"75": "Q90",    // Paris
	"77": "Q12753", // Seine-et-Marne
	"78": "Q12820", // Yvelines
	"91": "Q12549", // Essonne
	"92": "Q12543", // Hauts-de-Seine
	"93": "Q12761", // Seine-Saint-Denis
	"94": "Q12788", // Val-de-Marne
	"95": "Q12784", // Val-d'Oise
}

// BuilderOption applies a configuration option to the Builder.
type BuilderOption func(*Builder)

// WithDepartmentQIDs replaces the département -> QID table.
func WithDepartmentQIDs(table map[string]string) BuilderOption {
	return func(b *Builder) {
		if len(table) > 0 {
			b.departments = table
		}
	}
}

// WithYearRange sets the inclusive birth-year bounds.
func WithYearRange(minYear, maxYear int) BuilderOption {
	return func(b *Builder) {
		if minYear > 0 && maxYear >= minYear {
			b.minYear = minYear
			b.maxYear = maxYear
		}
	}
}

// WithLabelLang sets the label language requested for every query. A single
// fixed language across all queries keeps nationality labels comparable.
func WithLabelLang(lang string) BuilderOption {
	return func(b *Builder) {
		if lang != "" {
			b.lang = lang
		}
	}
}

// Builder prepares well-formed query text for a département and year range.
// All substituted values come from static tables and integers, so there is no
// injection surface.
type Builder struct {
	bank        sparql.Bank
	departments map[string]string
	minYear     int
	maxYear     int
	lang        string
}

// Default year bounds and label language.
const (
	defaultMinYear = 1980
	defaultMaxYear = 2006
	defaultLang    = "fr"
)

// NewBuilder creates a Builder with default tables unless overridden.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		bank:        sparql.LoadBank(bytes.NewBufferString(queries)),
		departments: DefaultDepartmentQIDs,
		minYear:     defaultMinYear,
		maxYear:     defaultMaxYear,
		lang:        defaultLang,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PlayersByDepartment returns the query text for one département code.
func (b *Builder) PlayersByDepartment(code string) (string, error) {
	qid, ok := b.departments[code]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDepartment, code)
	}
	q, err := b.bank.Prepare("players-by-department", struct {
		Department string
		MinYear    int
		MaxYear    int
		Lang       string
	}{qid, b.minYear, b.maxYear, b.lang})
	if err != nil {
		return "", fmt.Errorf("prepare players query: %w", err)
	}
	return q, nil
}

// Probe returns the cheapest possible query, used to test whether the
// endpoint's throttling window has passed.
func (b *Builder) Probe() (string, error) {
	q, err := b.bank.Prepare("endpoint-probe", nil)
	if err != nil {
		return "", fmt.Errorf("prepare probe query: %w", err)
	}
	return q, nil
}
