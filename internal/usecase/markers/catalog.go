package markers

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/simaogato/healthflow-backend/internal/domain"
)

//go:embed markers.yaml
var defaultCatalogYAML []byte

// MarkerConfig is the static reference data for one blood marker
type MarkerConfig struct {
	Key            string   `yaml:"-"`
	Label          string   `yaml:"label"`
	Aliases        []string `yaml:"aliases"`
	Unit           string   `yaml:"unit"`
	Min            float64  `yaml:"min"`
	Max            float64  `yaml:"max"`
	DecreaseIsGood bool     `yaml:"decrease_is_good"`
}

// Range returns the configured reference range
func (c MarkerConfig) Range() domain.ReferenceRange {
	return domain.ReferenceRange{Min: c.Min, Max: c.Max}
}

// Preference returns which direction of change is good news for this marker
func (c MarkerConfig) Preference() Preference {
	if c.DecreaseIsGood {
		return PreferLower
	}
	return PreferHigher
}

type catalogFile struct {
	Markers []MarkerConfig `yaml:"markers"`
}

// Catalog is an immutable lookup of marker configs keyed by normalized label.
// It is built once at startup and safe for concurrent use.
type Catalog struct {
	byKey   map[string]*MarkerConfig
	entries []MarkerConfig
}

// LoadCatalog parses a YAML catalog
// Every label and alias is indexed by its normalized form; collisions between markers are rejected.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse marker catalog: %w", err)
	}

	entries := make([]MarkerConfig, 0, len(file.Markers))
	for i, cfg := range file.Markers {
		cfg.Key = Normalize(cfg.Label)
		if cfg.Key == "" {
			return nil, fmt.Errorf("marker #%d has an empty label", i+1)
		}
		if err := cfg.Range().Validate(); err != nil {
			return nil, fmt.Errorf("marker %q: %w", cfg.Label, err)
		}
		entries = append(entries, cfg)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	catalog := &Catalog{
		byKey:   make(map[string]*MarkerConfig),
		entries: entries,
	}

	for i := range catalog.entries {
		cfg := &catalog.entries[i]
		for _, name := range append([]string{cfg.Label}, cfg.Aliases...) {
			key := Normalize(name)
			if key == "" {
				continue
			}
			if existing, ok := catalog.byKey[key]; ok && existing != cfg {
				return nil, fmt.Errorf("marker name %q of %q collides with %q", name, cfg.Label, existing.Label)
			}
			catalog.byKey[key] = cfg
		}
	}

	return catalog, nil
}

// DefaultCatalog returns the catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
}

// Lookup finds the config for a label or alias in any spelling
func (c *Catalog) Lookup(label string) (MarkerConfig, bool) {
	return c.LookupKey(Normalize(label))
}

// LookupKey finds the config for an already normalized key
func (c *Catalog) LookupKey(key string) (MarkerConfig, bool) {
	if c == nil {
		return MarkerConfig{}, false
	}
	cfg, ok := c.byKey[key]
	if !ok {
		return MarkerConfig{}, false
	}
	return *cfg, true
}

// CanonicalKey returns the key a reading with this label is stored and grouped under.
// Aliases resolve to their marker's key; unknown labels keep their normalized form.
func (c *Catalog) CanonicalKey(label string) string {
	key := Normalize(label)
	if cfg, ok := c.LookupKey(key); ok {
		return cfg.Key
	}
	return key
}

// Entries returns a copy of every configured marker ordered by key
func (c *Catalog) Entries() []MarkerConfig {
	if c == nil {
		return nil
	}
	out := make([]MarkerConfig, len(c.entries))
	copy(out, c.entries)
	return out
}
