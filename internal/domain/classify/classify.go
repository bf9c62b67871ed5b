// Package classify derives categorical diaspora attributes from a player's
// nationality labels using static, injected lookup tables.
package classify

// Region groups citizenship countries into a broader cultural/geographic band.
// Table order matters: when a nationality list intersects more than one
// region's country set, the earlier-listed region wins.
type Region struct {
	Name      string
	Countries []string
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithRegions replaces the default region table. The slice order defines the
// tie-break order.
func WithRegions(regions []Region) Option {
	return func(c *Classifier) {
		if len(regions) > 0 {
			c.regions = regions
		}
	}
}

// WithHomeCountry sets the label that is never counted as a diaspora match.
func WithHomeCountry(label string) Option {
	return func(c *Classifier) {
		if label != "" {
			c.home = label
		}
	}
}

// Classifier maps nationality lists to diaspora attributes. It is pure and
// holds no mutable state, so classification may be re-run at any time.
type Classifier struct {
	regions []Region
	home    string

	// membership index built once from regions
	countryRegion map[string]int
}

// New creates a Classifier with the default tables unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		regions: DefaultRegions(),
		home:    defaultHomeCountry,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.countryRegion = make(map[string]int)
	for i, r := range c.regions {
		for _, country := range r.Countries {
			// first region listing a country keeps it
			if _, ok := c.countryRegion[country]; !ok {
				c.countryRegion[country] = i
			}
		}
	}
	return c
}

// Classify returns the diaspora region for a nationality list, plus every
// nationality that matched any configured region, in scan order.
//
// The region is the first one in table order whose country set intersects the
// list; an empty region means no nationality matched anything, which is a
// legitimate outcome, not an error. The home country never matches.
func (c *Classifier) Classify(nationalities []string) (string, []string) {
	best := -1
	var matched []string
	for _, nat := range nationalities {
		if nat == c.home {
			continue
		}
		idx, ok := c.countryRegion[nat]
		if !ok {
			continue
		}
		matched = append(matched, nat)
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return "", nil
	}
	return c.regions[best].Name, matched
}

// IsDualNational reports whether the list holds more than one distinct label.
// An empty list is false, not an error.
func (c *Classifier) IsDualNational(nationalities []string) bool {
	if len(nationalities) < 2 {
		return false
	}
	distinct := make(map[string]struct{}, len(nationalities))
	for _, nat := range nationalities {
		distinct[nat] = struct{}{}
	}
	return len(distinct) > 1
}
