// Package prompt holds the gratitude prompt catalog and the deterministic
// policy that picks one prompt per user per day.
package prompt

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// GeneralTag is the primary tag of a prompt that carries no tags.
const GeneralTag = "general"

//go:embed catalog.yaml
var catalogYAML []byte

// Prompt is a single catalog entry. The first tag is the primary tag.
type Prompt struct {
	ID   string   `yaml:"id"`
	Text string   `yaml:"text"`
	Tags []string `yaml:"tags"`
}

// PrimaryTag returns the first tag, or GeneralTag when there are none.
func (p Prompt) PrimaryTag() string {
	if len(p.Tags) == 0 || p.Tags[0] == "" {
		return GeneralTag
	}
	return p.Tags[0]
}

// Catalog is an immutable, id-ordered set of prompts. Selection indexes
// into this order, so it must never depend on file or map ordering.
type Catalog struct {
	prompts []Prompt
	byID    map[string]int
}

type catalogFile struct {
	Prompts []Prompt `yaml:"prompts"`
}

// NewCatalog validates and sorts prompts by id.
func NewCatalog(prompts []Prompt) (*Catalog, error) {
	if len(prompts) == 0 {
		return nil, fmt.Errorf("prompt catalog is empty")
	}

	sorted := make([]Prompt, len(prompts))
	copy(sorted, prompts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[string]int, len(sorted))
	for i, p := range sorted {
		if p.ID == "" {
			return nil, fmt.Errorf("prompt at position %d has no id", i)
		}
		if p.Text == "" {
			return nil, fmt.Errorf("prompt %s has no text", p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate prompt id %s", p.ID)
		}
		byID[p.ID] = i
	}

	return &Catalog{prompts: sorted, byID: byID}, nil
}

// LoadCatalog parses a YAML catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing prompt catalog: %w", err)
	}
	return NewCatalog(f.Prompts)
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(catalogYAML)
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// All returns a copy of the prompts in catalog order.
func (c *Catalog) All() []Prompt {
	out := make([]Prompt, len(c.prompts))
	copy(out, c.prompts)
	return out
}

func (c *Catalog) Len() int { return len(c.prompts) }

// Get looks up a prompt by id.
func (c *Catalog) Get(id string) (Prompt, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Prompt{}, false
	}
	return c.prompts[i], true
}

// PrimaryTags returns the distinct primary tags in catalog order.
func (c *Catalog) PrimaryTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range c.prompts {
		t := p.PrimaryTag()
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
