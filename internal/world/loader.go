package world

import (
	"encoding/json"
	"fmt"
)

// BombLayout is the JSON-serializable definition of the host bomb a session
// runs on.
type BombLayout struct {
	Name    string      `json:"name"`
	Serial  string      `json:"serial"`
	Modules []ModuleDef `json:"modules"`
}

// ModuleDef defines one module on the bomb.
type ModuleDef struct {
	Name   string `json:"name"`
	Solved bool   `json:"solved"`
}

// LoadBombLayout parses a BombLayout from JSON bytes.
func LoadBombLayout(data []byte) (*BombLayout, error) {
	var layout BombLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("parse bomb layout: %w", err)
	}
	if layout.Serial == "" {
		return nil, fmt.Errorf("bomb layout %q has no serial number", layout.Name)
	}
	for i, m := range layout.Modules {
		if m.Name == "" {
			return nil, fmt.Errorf("module %d of bomb %q has no name", i, layout.Name)
		}
	}
	return &layout, nil
}
