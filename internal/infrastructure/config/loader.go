package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const (
	physicsFile     = "physics.toml"
	entitiesFile    = "entities.yaml"
	stageSchemaFile = "stage.schema.json"
)

// ErrInvalidStage is returned when a stage file fails schema validation
var ErrInvalidStage = errors.New("stage does not match schema")

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader loads game configuration through the fs.FS interface
type Loader struct {
	fsys fs.FS
	root string
	log  *log.Logger

	stageSchema *jsonschema.Schema
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys: os.DirFS(basePath),
		root: ".",
	}
}

// NewFSLoader creates a new config loader from fs.FS, reading below root
func NewFSLoader(fsys fs.FS, root string) *Loader {
	if root == "" {
		root = "."
	}
	return &Loader{
		fsys: fsys,
		root: root,
	}
}

// WithLogger sets the logger used for non-fatal warnings
func (l *Loader) WithLogger(lg *log.Logger) *Loader {
	l.log = lg
	return l
}

func (l *Loader) read(name string) ([]byte, error) {
	return fs.ReadFile(l.fsys, path.Join(l.root, name))
}

func (l *Loader) logf(format string, args ...any) {
	if l.log != nil {
		l.log.Printf(format, args...)
	}
}

// LoadPhysics loads physics.toml
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := l.read(physicsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", physicsFile, err)
	}

	var cfg PhysicsConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", physicsFile, err)
	}
	for _, key := range md.Undecoded() {
		l.logf("config: unknown key %q in %s", key.String(), physicsFile)
	}

	return &cfg, nil
}

// LoadEntities loads entities.yaml
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := l.read(entitiesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", entitiesFile, err)
	}

	var cfg EntitiesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", entitiesFile, err)
	}

	return &cfg, nil
}

func (l *Loader) schema() (*jsonschema.Schema, error) {
	if l.stageSchema != nil {
		return l.stageSchema, nil
	}
	data, err := l.read(stageSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", stageSchemaFile, err)
	}
	s, err := jsonschema.CompileString(stageSchemaFile, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", stageSchemaFile, err)
	}
	l.stageSchema = s
	return s, nil
}

// LoadStage loads a stage JSON file and validates it against the stage schema
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	p := path.Join("stages", name+".json")
	data, err := l.read(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	schema, err := l.schema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidStage, name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads all base configurations (physics, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}
