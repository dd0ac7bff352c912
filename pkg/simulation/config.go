package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tochemey/goakt/v3/log"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

type Config struct {
	// World Dimensions (full extents, the world is centered on the origin)
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBoids int    `json:"numBoids"`
	Seed     uint64 `json:"seed"` // 0 means time based

	// Boids flocking parameters (matching pkg/flock/params.go)
	AlignmentFactor         float64 `json:"alignmentFactor"`
	CoherenceFactor         float64 `json:"coherenceFactor"`
	SeparationFactor        float64 `json:"separationFactor"`
	ObstacleAvoidanceFactor float64 `json:"obstacleAvoidanceFactor"`
	VisualRadius            float64 `json:"visualRadius"`
	MaxSpeed                float64 `json:"maxSpeed"`
	ObstacleSpacing         float64 `json:"obstacleSpacing"`

	// Variants, all off by default
	SeparationEnabled    bool `json:"separationEnabled"`
	DistanceWeighted     bool `json:"distanceWeighted"`
	ObstaclesMatchBounds bool `json:"obstaclesMatchBounds"`

	// Hosts
	TickRate int    `json:"tickRate"` // ticks per second for the terminal view
	LogLevel string `json:"logLevel"`
}

func DefaultConfig() *Config {
	p := flock.DefaultParams()
	return &Config{
		WorldWidth:              1920,
		WorldHeight:             1080,
		NumBoids:                50,
		AlignmentFactor:         p.AlignmentFactor,
		CoherenceFactor:         p.CoherenceFactor,
		SeparationFactor:        p.SeparationFactor,
		ObstacleAvoidanceFactor: p.ObstacleAvoidanceFactor,
		VisualRadius:            p.VisualRadius,
		MaxSpeed:                p.MaxSpeed,
		ObstacleSpacing:         p.ObstacleSpacing,
		TickRate:                60,
		LogLevel:                "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file (by extension) and
// validates it against the embedded schema. Fields missing from the file keep
// their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		return ParseConfigYAML(b)
	default:
		return ParseConfig(b)
	}
}

// ParseConfigYAML converts a YAML document to JSON, then behaves like ParseConfig.
func ParseConfigYAML(b []byte) (*Config, error) {
	var doc interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config yaml: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config yaml: %w", err)
	}
	return ParseConfig(asJSON)
}

// ParseConfig validates a JSON document against the schema and overlays it on the defaults.
func ParseConfig(b []byte) (*Config, error) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}

	if err := configSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Params extracts the steering constants.
func (c *Config) Params() flock.Params {
	return flock.Params{
		CoherenceFactor:         c.CoherenceFactor,
		SeparationFactor:        c.SeparationFactor,
		AlignmentFactor:         c.AlignmentFactor,
		ObstacleAvoidanceFactor: c.ObstacleAvoidanceFactor,
		VisualRadius:            c.VisualRadius,
		MaxSpeed:                c.MaxSpeed,
		ObstacleSpacing:         c.ObstacleSpacing,
		SeparationEnabled:       c.SeparationEnabled,
		DistanceWeighted:        c.DistanceWeighted,
		ObstaclesMatchBounds:    c.ObstaclesMatchBounds,
	}
}

// Logger builds the actor system logger at the configured level, writing to
// stderr unless other writers are given.
func (c *Config) Logger(writers ...io.Writer) log.Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}
	return log.New(c.logLevel(), writers...)
}

func (c *Config) logLevel() log.Level {
	switch c.LogLevel {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarningLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
