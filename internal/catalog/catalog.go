// Package catalog holds the commodity and region reference tables used to map user
// selections onto the Agmarknet vocabulary and the heuristic price table.
//
// The tables are plain data embedded from data/*.json; nothing in the resolver branches
// on individual entries.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultCommodity is substituted when a commodity id is not in the table.
	DefaultCommodity = "tomato"
	// DefaultState is substituted when a location id has no state mapping.
	DefaultState = "Karnataka"
	// DefaultMultiplier is used for locations without a regional multiplier.
	DefaultMultiplier = 1.0
)

//go:embed data/*.json
var dataFS embed.FS

// PriceBand is a per-kg price triple in rupees.
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Commodity is one row of the commodity table.
type Commodity struct {
	ID        string    `json:"id"`
	Agmarknet string    `json:"agmarknet"`
	Base      PriceBand `json:"base"`
}

// Region is one row of the location table.
type Region struct {
	ID         string  `json:"id"`
	State      string  `json:"state"`
	Multiplier float64 `json:"multiplier"`
}

// Catalog indexes the embedded tables by id.
type Catalog struct {
	commodities map[string]Commodity
	regions     map[string]Region
}

var defaultCatalog = mustLoad()

// Default returns the catalog built from the embedded tables.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Load parses the embedded tables.
func Load() (*Catalog, error) {
	var commodityFile struct {
		Commodities []Commodity `json:"commodities"`
	}
	var regionFile struct {
		Regions []Region `json:"regions"`
	}
	if err := readJSON("data/commodities.json", &commodityFile); err != nil {
		return nil, err
	}
	if err := readJSON("data/regions.json", &regionFile); err != nil {
		return nil, err
	}
	return New(commodityFile.Commodities, regionFile.Regions)
}

// New builds a catalog from explicit rows. The default commodity must be present.
func New(commodities []Commodity, regions []Region) (*Catalog, error) {
	c := &Catalog{
		commodities: make(map[string]Commodity, len(commodities)),
		regions:     make(map[string]Region, len(regions)),
	}
	for _, row := range commodities {
		c.commodities[normalize(row.ID)] = row
	}
	for _, row := range regions {
		c.regions[normalize(row.ID)] = row
	}
	if _, ok := c.commodities[DefaultCommodity]; !ok {
		return nil, fmt.Errorf("catalog: default commodity %q missing", DefaultCommodity)
	}
	return c, nil
}

func readJSON(name string, v interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Commodity looks up a commodity by id.
func (c *Catalog) Commodity(id string) (Commodity, bool) {
	row, ok := c.commodities[normalize(id)]
	return row, ok
}

// Region looks up a location by id.
func (c *Catalog) Region(id string) (Region, bool) {
	row, ok := c.regions[normalize(id)]
	return row, ok
}

// AgmarknetName maps a commodity id to its Agmarknet display name, falling back to
// the default commodity. The second result reports whether the id was mapped.
func (c *Catalog) AgmarknetName(id string) (string, bool) {
	if row, ok := c.Commodity(id); ok && row.Agmarknet != "" {
		return row.Agmarknet, true
	}
	return c.commodities[DefaultCommodity].Agmarknet, false
}

// StateName maps a location id to its state, falling back to DefaultState.
func (c *Catalog) StateName(id string) (string, bool) {
	if row, ok := c.Region(id); ok && row.State != "" {
		return row.State, true
	}
	return DefaultState, false
}

// BasePrice returns the heuristic base band for a commodity, falling back to the
// default commodity.
func (c *Catalog) BasePrice(id string) PriceBand {
	if row, ok := c.Commodity(id); ok {
		return row.Base
	}
	return c.commodities[DefaultCommodity].Base
}

// Multiplier returns the regional multiplier for a location, or DefaultMultiplier.
func (c *Catalog) Multiplier(id string) float64 {
	if row, ok := c.Region(id); ok && row.Multiplier > 0 {
		return row.Multiplier
	}
	return DefaultMultiplier
}

// Commodities lists commodity ids in sorted order.
func (c *Catalog) Commodities() []string {
	return sortedKeys(c.commodities)
}

// Regions lists location ids in sorted order.
func (c *Catalog) Regions() []string {
	return sortedKeys(c.regions)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
