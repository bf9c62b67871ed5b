// Package dataset assembles per-département batches into the final
// deduplicated collection and serializes it to the output formats.
package dataset

import (
	"context"

	"github.com/parisfoot/idfplayers/internal/domain/classify"
	"github.com/parisfoot/idfplayers/internal/domain/dedupe"
	"github.com/parisfoot/idfplayers/internal/domain/model"
	"github.com/parisfoot/idfplayers/pkg/metrics"
)

// Option applies a configuration option to the Assembler.
type Option func(*Assembler)

// WithClassifier sets the classifier used by the classification pass.
func WithClassifier(c *classify.Classifier) Option {
	return func(a *Assembler) {
		if c != nil {
			a.classifier = c
		}
	}
}

// Assembler accumulates records across batches. It is owned by a single run
// and used sequentially, matching the pipeline's one-region-at-a-time flow.
type Assembler struct {
	classifier *classify.Classifier
	deduper    dedupe.Deduper

	players []model.Player
	byDept  map[string]int
}

// New creates an empty Assembler with the default classifier unless
// overridden.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		classifier: classify.New(),
		deduper:    dedupe.New(),
		byDept:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add merges one batch into the collection and returns how many records were
// actually inserted. An entity already present keeps its first-seen record,
// so re-adding a batch (a resumed run, an overlapping query) is a no-op for
// the duplicates.
func (a *Assembler) Add(ctx context.Context, batch model.Batch) int {
	added := 0
	for _, p := range batch.Players {
		if p.WikidataID == "" {
			continue
		}
		if a.deduper.SeenAndRecord(ctx, p.WikidataID) {
			metrics.IncDuplicate()
			continue
		}
		a.players = append(a.players, p)
		added++
	}
	a.byDept[batch.Department] += added
	metrics.SetPlayersCollected(len(a.players))
	return added
}

// ClassifyAll recomputes the derived fields of every record from its
// nationality list. Derived fields are never carried over from a previous
// pass: a record whose nationalities changed reclassifies cleanly.
func (a *Assembler) ClassifyAll() {
	regionCounts := make(map[string]int)
	for i := range a.players {
		p := &a.players[i]
		p.IsDualNational = a.classifier.IsDualNational(p.Nationalities)
		p.DiasporaRegion, p.DiasporaCountries = a.classifier.Classify(p.Nationalities)
		if p.DiasporaRegion != "" {
			regionCounts[p.DiasporaRegion]++
		}
	}
	for region, n := range regionCounts {
		metrics.SetPlayersByRegion(region, n)
	}
}

// Players returns the assembled records in merge order.
func (a *Assembler) Players() []model.Player {
	return a.players
}

// Len returns the number of deduplicated records.
func (a *Assembler) Len() int {
	return len(a.players)
}
