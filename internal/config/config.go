package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"interview-coach-go/internal/analysis"
	"interview-coach-go/internal/enrichment"
)

const (
	defaultPort             = "8080"
	defaultEnrichTimeout    = 15 * time.Second
	defaultBatchConcurrency = 4
)

// Config is the process configuration shared by cmd/api and cmd/coach.
type Config struct {
	Port             string
	Fillers          []string
	Enrichment       enrichment.Config
	BatchConcurrency int
}

// file mirrors the optional YAML file named by COACH_CONFIG.
type file struct {
	Fillers    []string `yaml:"fillers"`
	Enrichment struct {
		Provider   string `yaml:"provider"`
		Model      string `yaml:"model"`
		BaseURL    string `yaml:"base_url"`
		TimeoutSec int    `yaml:"timeout_sec"`
		MaxTokens  int    `yaml:"max_tokens"`
	} `yaml:"enrichment"`
	Batch struct {
		Concurrency int `yaml:"concurrency"`
	} `yaml:"batch"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:             defaultPort,
		Fillers:          append([]string(nil), analysis.DefaultFillers...),
		Enrichment:       enrichment.Config{Timeout: defaultEnrichTimeout},
		BatchConcurrency: defaultBatchConcurrency,
	}
}

// Load reads dotenv files (".env" when none given; missing files are
// ignored), then the YAML file named by COACH_CONFIG, then environment
// variables. Later sources win.
func Load(dotenv ...string) (Config, error) {
	_ = godotenv.Load(dotenv...)

	cfg := Defaults()
	if p := os.Getenv("COACH_CONFIG"); p != "" {
		if err := applyFile(&cfg, p); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Enrichment.Provider == "" {
		if cfg.Enrichment.APIKey != "" {
			cfg.Enrichment.Provider = enrichment.ProviderOpenAI
		} else {
			cfg.Enrichment.Provider = enrichment.ProviderNone
		}
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var fc file
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if len(fc.Fillers) > 0 {
		cfg.Fillers = fc.Fillers
	}
	e := fc.Enrichment
	if e.Provider != "" {
		cfg.Enrichment.Provider = e.Provider
	}
	if e.Model != "" {
		cfg.Enrichment.Model = e.Model
	}
	if e.BaseURL != "" {
		cfg.Enrichment.BaseURL = e.BaseURL
	}
	if e.TimeoutSec > 0 {
		cfg.Enrichment.Timeout = time.Duration(e.TimeoutSec) * time.Second
	}
	if e.MaxTokens > 0 {
		cfg.Enrichment.MaxTokens = e.MaxTokens
	}
	if fc.Batch.Concurrency > 0 {
		cfg.BatchConcurrency = fc.Batch.Concurrency
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("FILLER_WORDS"); v != "" {
		cfg.Fillers = splitList(v)
	}
	if v := os.Getenv("ENRICHMENT_PROVIDER"); v != "" {
		cfg.Enrichment.Provider = v
	}
	cfg.Enrichment.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Enrichment.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Enrichment.Model = v
	}

	n, err := envInt("ENRICHMENT_TIMEOUT_SEC")
	if err != nil {
		return err
	}
	if n > 0 {
		cfg.Enrichment.Timeout = time.Duration(n) * time.Second
	}
	if n, err = envInt("ENRICHMENT_MAX_TOKENS"); err != nil {
		return err
	} else if n > 0 {
		cfg.Enrichment.MaxTokens = n
	}
	if n, err = envInt("BATCH_CONCURRENCY"); err != nil {
		return err
	} else if n > 0 {
		cfg.BatchConcurrency = n
	}
	return nil
}

func envInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
