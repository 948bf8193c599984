// Package configs embeds the default physics, entity and stage files.
package configs

import "embed"

//go:embed physics.toml entities.yaml stage.schema.json stages
var FS embed.FS
