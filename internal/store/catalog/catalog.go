package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/ccauto/internal/model"
)

// JSON-backed fallback content. Single file, human-readable, optional:
// anything missing from it is filled from the built-in lists so both
// sequences are never empty.

// DefaultFileName is looked up in the working directory when no path is configured.
const DefaultFileName = "catalog.json"

// Catalog holds the fallback sequences for both carousels.
type Catalog struct {
	Reviews  []model.Review  `json:"reviews"`
	Services []model.Service `json:"services"`
}

// Default returns a copy of the built-in catalog.
func Default() Catalog {
	return Catalog{
		Reviews:  append([]model.Review(nil), builtinReviews...),
		Services: append([]model.Service(nil), builtinServices...),
	}
}

// Load reads path. An empty path means DefaultFileName in the working
// directory; a missing file yields Default().
func Load(path string) (Catalog, error) {
	p, err := resolvePath(path)
	if err != nil {
		return Catalog{}, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Catalog{}, fmt.Errorf("read file: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("json unmarshal: %w", err)
	}
	def := Default()
	if len(c.Reviews) == 0 {
		c.Reviews = def.Reviews
	}
	if len(c.Services) == 0 {
		c.Services = def.Services
	}
	return c, nil
}

// Save writes c to path as indented JSON.
func Save(path string, c Catalog) error {
	p, err := resolvePath(path)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, DefaultFileName), nil
}
