// Package template loads the catalog of portfolio templates users can select.
package template

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go-portfolio-backend/internal/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Templates []domain.Template `yaml:"templates"`
}

// Catalog is an immutable, ordered set of templates.
type Catalog struct {
	templates []domain.Template
	byID      map[string]domain.Template
}

// Load reads the catalog from path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	data := embeddedCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read template catalog: %w", err)
		}
	}
	return Parse(data)
}

// Parse decodes a YAML catalog and checks that ids are unique and present.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("template catalog is empty")
	}

	c := &Catalog{
		templates: file.Templates,
		byID:      make(map[string]domain.Template, len(file.Templates)),
	}
	for _, t := range file.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %q has no id", t.Name)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = t
	}
	return c, nil
}

func (c *Catalog) List() []domain.Template {
	out := make([]domain.Template, len(c.templates))
	copy(out, c.templates)
	return out
}

func (c *Catalog) Get(id string) (domain.Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Default returns the template flagged as default, or the first one.
func (c *Catalog) Default() domain.Template {
	for _, t := range c.templates {
		if t.Default {
			return t
		}
	}
	return c.templates[0]
}
