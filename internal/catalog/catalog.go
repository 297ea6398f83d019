package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"realorai-service/internal/domain"
)

//go:embed catalog.yaml
var defaultDocument []byte

// Rand is the randomness source used for variant draws, shuffles and placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type document struct {
	Pairs []entry `yaml:"pairs"`
}

type entry struct {
	ID          string    `yaml:"id"`
	Kind        string    `yaml:"kind"`
	AspectRatio string    `yaml:"aspect_ratio"`
	Authentic   itemDoc   `yaml:"authentic"`
	Synthetic   []itemDoc `yaml:"synthetic"`
}

type itemDoc struct {
	ID          string `yaml:"id"`
	Source      string `yaml:"source"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	AspectRatio string `yaml:"aspect_ratio"`
	Fallback    string `yaml:"fallback"`
}

// Catalog is the fixed registry of comparison pairs. It is read-only after load.
type Catalog struct {
	entries []entry
}

// Default parses the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Load reads a catalog document from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	if err := validate(doc.Pairs); err != nil {
		return nil, err
	}
	return &Catalog{entries: doc.Pairs}, nil
}

func validate(entries []entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("%w: pair %d has no id", domain.ErrInvalidCatalog, i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate pair id %q", domain.ErrInvalidCatalog, e.ID)
		}
		seen[e.ID] = struct{}{}

		kind := domain.ContentKind(e.Kind)
		if !kind.Valid() {
			return fmt.Errorf("%w: pair %q has unknown kind %q", domain.ErrInvalidCatalog, e.ID, e.Kind)
		}
		if e.Authentic.ID == "" || e.Authentic.Source == "" {
			return fmt.Errorf("%w: pair %q authentic item needs id and source", domain.ErrInvalidCatalog, e.ID)
		}
		if len(e.Synthetic) == 0 {
			return fmt.Errorf("%w: pair %q has no synthetic candidates", domain.ErrInvalidCatalog, e.ID)
		}
		if kind != domain.KindImage && len(e.Synthetic) != 1 {
			return fmt.Errorf("%w: %s pair %q must have exactly one synthetic candidate", domain.ErrInvalidCatalog, kind, e.ID)
		}
		for _, s := range e.Synthetic {
			if s.ID == "" || s.Source == "" {
				return fmt.Errorf("%w: pair %q synthetic item needs id and source", domain.ErrInvalidCatalog, e.ID)
			}
		}
	}
	return nil
}

// Len is the number of pairs produced by every GenerateAllPairs call.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// GenerateAllPairs builds one QuizPair per entry in catalog order. Image entries draw
// one synthetic candidate uniformly at random; other kinds use their single candidate.
func (c *Catalog) GenerateAllPairs(rnd Rand) []domain.QuizPair {
	pairs := make([]domain.QuizPair, 0, len(c.entries))
	for _, e := range c.entries {
		kind := domain.ContentKind(e.Kind)
		variant := e.Synthetic[0]
		if kind == domain.KindImage && len(e.Synthetic) > 1 {
			variant = e.Synthetic[rnd.Intn(len(e.Synthetic))]
		}
		pairs = append(pairs, domain.QuizPair{
			ID:          e.ID,
			Kind:        kind,
			Authentic:   e.Authentic.item(kind, false, e.AspectRatio),
			Synthetic:   variant.item(kind, true, e.AspectRatio),
			AspectRatio: e.AspectRatio,
		})
	}
	return pairs
}

func (d itemDoc) item(kind domain.ContentKind, synthetic bool, pairAspect string) domain.QuizItem {
	aspect := d.AspectRatio
	if aspect == "" {
		aspect = pairAspect
	}
	return domain.QuizItem{
		ID:          d.ID,
		Kind:        kind,
		Source:      d.Source,
		Synthetic:   synthetic,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		AspectRatio: aspect,
		Fallback:    d.Fallback,
	}
}
