// Package partners serves the channel-partner catalog shown behind login.
package partners

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/appforms/backend/internal/models"
)

// Catalog is the process-wide partner listing, loaded once at startup.
type Catalog struct {
	partners []models.Partner
}

type catalogFile struct {
	Partners []models.Partner `yaml:"partners"`
}

// Load reads a YAML catalog file. A missing file yields an empty catalog so
// the server can still start without partner data.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Catalog{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading partner catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing partner catalog: %w", err)
	}

	return &Catalog{partners: f.Partners}, nil
}

// List returns the partners in file order.
func (c *Catalog) List() []models.Partner {
	if c.partners == nil {
		return []models.Partner{}
	}
	return c.partners
}
