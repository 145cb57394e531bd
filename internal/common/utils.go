package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/llm-doc-processor/models"
	"github.com/dtnitsch/llm-doc-processor/pkg/caching"
	"github.com/dtnitsch/llm-doc-processor/pkg/db"
	"github.com/dtnitsch/llm-doc-processor/pkg/processor"
	"github.com/dtnitsch/llm-doc-processor/pkg/recognizer"
)

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GOOGLE_API_KEY"

// NewLogger returns the JSON stderr logger every action uses; --quiet keeps
// only errors.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// RunConfigFromFlags reads the shared process/batch flags.
func RunConfigFromFlags(c *cli.Context) models.RunConfig {
	cfg := models.DefaultRunConfig()
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-ttl") {
		cfg.CacheTTL = c.Duration("cache-ttl")
	}
	cfg.APIKey = c.String("api-key")
	cfg.Force = c.Bool("force")
	cfg.DryRun = c.Bool("dry-run")
	cfg.DBPath = c.String("db")
	return cfg
}

// NewRecognizer builds the recognition engine named by engine. Local
// engines are found only if their package was linked into the binary.
func NewRecognizer(engine, apiKey string) (recognizer.Recognizer, error) {
	switch strings.ToLower(engine) {
	case "", "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("%s not set; export it or add it to a .env file", APIKeyEnv)
		}
		return recognizer.NewGeminiClient(apiKey), nil
	default:
		if rec, ok := recognizer.NewLocal(strings.ToLower(engine)); ok {
			return rec, nil
		}
		return nil, fmt.Errorf("unknown engine %q: available: %s", engine,
			strings.Join(append([]string{"gemini"}, recognizer.LocalEngines()...), ", "))
	}
}

// NewProcessor wires a processor from the run configuration. The returned
// close function releases the history database.
func NewProcessor(cfg models.RunConfig, logger *slog.Logger) (*processor.Processor, func(), error) {
	rec, err := NewRecognizer(cfg.Engine, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}

	var cache *caching.Cache
	if cfg.CacheDir != "" {
		cache, err = caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
		if err != nil {
			return nil, nil, err
		}
	}

	var database *db.DB
	if !cfg.DryRun {
		database, err = db.Open(cfg.DBPath)
		if err != nil {
			// Run history is optional; processing goes ahead without it.
			logger.Warn("Run history disabled", "error", err)
			database = nil
		}
	}

	proc, err := processor.New(processor.Config{
		Recognizer: rec,
		Cache:      cache,
		DB:         database,
		Logger:     logger,
		DryRun:     cfg.DryRun,
	})
	if err != nil {
		if database != nil {
			_ = database.Close()
		}
		return nil, nil, err
	}

	closeFn := func() {
		if database != nil {
			_ = database.Close()
		}
	}
	return proc, closeFn, nil
}

// OpenDB opens the run history database named by --db.
func OpenDB(c *cli.Context) (*db.DB, error) {
	database, err := db.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// WriteOutput encodes v to w as YAML (the default) or indented JSON.
func WriteOutput(w io.Writer, v any, format string) error {
	var data []byte
	var err error
	switch strings.ToLower(format) {
	case "", "yaml":
		data, err = yaml.Marshal(v)
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown format %q: expected yaml or json", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FilterResultFields keeps only the comma-separated top-level fields of a
// result, using its JSON field names.
func FilterResultFields(result any, fieldsStr string) map[string]any {
	fullMap := structToMap(result)
	if fieldsStr == "" {
		return fullMap
	}

	includeFields := make(map[string]bool)
	for _, field := range strings.Split(fieldsStr, ",") {
		includeFields[strings.TrimSpace(field)] = true
	}

	filtered := make(map[string]any)
	for key, value := range fullMap {
		if includeFields[key] {
			filtered[key] = value
		}
	}
	return filtered
}

// structToMap converts a struct to map[string]any using JSON marshaling.
func structToMap(obj any) map[string]any {
	data, _ := json.Marshal(obj)
	var result map[string]any
	_ = json.Unmarshal(data, &result)
	return result
}
