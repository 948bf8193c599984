package config

import "strings"

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	Background  BackgroundConfig             `json:"background"`
	Music       string                       `json:"music"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Entities    []EntityDescriptor           `json:"entities"`
}

type StageSizeConfig struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	TileSize int `json:"tileSize"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type   string `json:"type"` // wall | spike | oneway
	Solid  bool   `json:"solid"`
	Damage int    `json:"damage,omitempty"`
}

// EntityDescriptor places one entity in a stage. Type is "<kind>:<id>",
// e.g. "enemy:grunt" or "item:coin"; "flag" needs no id.
type EntityDescriptor struct {
	Type        string         `json:"type"`
	X           float64        `json:"x"`
	Y           float64        `json:"y"`
	FacingRight bool           `json:"facingRight"`
	Props       map[string]any `json:"props,omitempty"`
}

// PropFloat returns a numeric prop or def
func (d EntityDescriptor) PropFloat(key string, def float64) float64 {
	switch v := d.Props[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// PropInt returns an integer prop or def
func (d EntityDescriptor) PropInt(key string, def int) int {
	switch v := d.Props[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// PropStrings returns a string list prop
func (d EntityDescriptor) PropStrings(key string) []string {
	raw, ok := d.Props[key].([]any)
	if !ok {
		if s, ok := d.Props[key].([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Split returns the kind and id halves of Type
func (d EntityDescriptor) Split() (kind, id string) {
	kind, id, _ = strings.Cut(d.Type, ":")
	return kind, id
}
