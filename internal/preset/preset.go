package preset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"Impas/internal/calc/analysis"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresets []byte

type Preset struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description" json:"description"`
	Input       analysis.Input `yaml:"input" json:"input"`
}

// Load reads presets from path, or the built-in set when path is empty.
func Load(path string) ([]Preset, error) {
	data := defaultPresets
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read presets: %w", err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) ([]Preset, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	seen := make(map[string]bool, len(presets))
	for i, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Input.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return presets, nil
}

func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

type Handler struct {
	Presets []Preset
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Presets)
}
