// Package config loads the utility configuration from YAML and environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Pairs     PairsConfig     `yaml:"pairs"`
	LangNames LangNamesConfig `yaml:"lang_names"`
	Coverage  CoverageConfig  `yaml:"coverage"`
	PerWord   PerWordConfig   `yaml:"per_word"`
	Wiki      WikiConfig      `yaml:"wiki"`
	Log       LogConfig       `yaml:"log"`
}

// EngineConfig locates the external tools.
type EngineConfig struct {
	AnalyzerBin string `yaml:"analyzer_bin" env:"APY_ANALYZER_BIN" env-default:"apertium"`
	LookupBin   string `yaml:"lookup_bin"   env:"APY_LOOKUP_BIN"   env-default:"lt-proc"`
	// KagomeModes are mode names analyzed in-process by kagome instead of
	// the analyzer binary, comma separated.
	KagomeModes string `yaml:"kagome_modes" env:"APY_KAGOME_MODES"`
}

// PairsConfig lists the directories searched for compiled modes.
type PairsConfig struct {
	Roots string `yaml:"roots" env:"APY_PAIRS_ROOTS" env-default:"/usr/share/apertium"`
}

// LangNamesConfig locates the language name database.
type LangNamesConfig struct {
	DBPath string `yaml:"db_path" env:"APY_LANG_NAMES_DB" env-default:"langNames.db"`
}

// CoverageConfig holds coverage scoring settings.
type CoverageConfig struct {
	MaxParallel int  `yaml:"max_parallel" env:"APY_COVERAGE_MAX_PARALLEL" env-default:"4"`
	Penalize    bool `yaml:"penalize"     env:"APY_COVERAGE_PENALIZE"     env-default:"false"`
}

// PerWordConfig holds per-word pipeline settings.
type PerWordConfig struct {
	LookupWorkers int `yaml:"lookup_workers" env:"APY_PERWORD_LOOKUP_WORKERS" env-default:"4"`
}

// WikiConfig holds the suggestion wiki settings.
type WikiConfig struct {
	APIURL      string        `yaml:"api_url"      env:"APY_WIKI_API_URL"      env-default:"https://wiki.apertium.org/api.php"`
	SuggestPage string        `yaml:"suggest_page" env:"APY_WIKI_SUGGEST_PAGE" env-default:"Main_Page/Suggestions"`
	Timeout     time.Duration `yaml:"timeout"      env:"APY_WIKI_TIMEOUT"      env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// PairRoots splits Roots on commas, dropping blanks.
func (p PairsConfig) PairRoots() []string {
	return splitList(p.Roots)
}

// Modes splits KagomeModes on commas, dropping blanks.
func (e EngineConfig) Modes() []string {
	return splitList(e.KagomeModes)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is taken from CONFIG_PATH (fallback "./config.yaml").
// A missing default file is not an error; a missing explicit one is.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot.
func (c *Config) Validate() error {
	if c.Engine.AnalyzerBin == "" {
		return fmt.Errorf("engine.analyzer_bin must be set")
	}
	if c.Engine.LookupBin == "" {
		return fmt.Errorf("engine.lookup_bin must be set")
	}
	if c.Coverage.MaxParallel < 0 {
		return fmt.Errorf("coverage.max_parallel must be >= 0 (got %d)", c.Coverage.MaxParallel)
	}
	if c.PerWord.LookupWorkers <= 0 {
		return fmt.Errorf("per_word.lookup_workers must be > 0 (got %d)", c.PerWord.LookupWorkers)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
