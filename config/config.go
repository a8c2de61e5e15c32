// Package config provides configuration for the job-post agent.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names selectable via STORE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds the agent configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Store settings
	StoreBackend string
	DatabaseURL  string
	SessionDir   string
	RedisAddr    string
	IdleTimeout  time.Duration
	SweepInterval time.Duration

	// Workflow settings
	HistoryWindow         int
	CompletenessThreshold float64
	CompletionPhrases     []string
	FieldWeights          map[string]float64

	// LLM settings
	LLMURL     string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Submission settings
	SubmitURL     string
	SubmitTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:              getEnvInt("HTTP_PORT", 8080),
		StoreBackend:          getEnv("STORE_BACKEND", BackendSQLite),
		DatabaseURL:           getEnv("DATABASE_URL", "file:jobagent.db?cache=shared&mode=rwc"),
		SessionDir:            getEnv("SESSION_DIR", "./sessions"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		IdleTimeout:           time.Duration(getEnvInt("IDLE_TIMEOUT_MS", 86400000)) * time.Millisecond,
		SweepInterval:         time.Duration(getEnvInt("SWEEP_INTERVAL_MS", 3600000)) * time.Millisecond,
		HistoryWindow:         getEnvInt("HISTORY_WINDOW", 10),
		CompletenessThreshold: getEnvFloat("COMPLETENESS_THRESHOLD", 0.85),
		CompletionPhrases:     getEnvList("COMPLETION_PHRASES", defaultCompletionPhrases),
		FieldWeights:          getEnvWeights("FIELD_WEIGHTS", defaultFieldWeights()),
		LLMURL:                getEnv("LLM_URL", "http://localhost:4000"),
		LLMAPIKey:             getEnv("LLM_API_KEY", ""),
		LLMModel:              getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeout:            time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		SubmitURL:             getEnv("SUBMIT_URL", "http://localhost:9000"),
		SubmitTimeout:         time.Duration(getEnvInt("SUBMIT_TIMEOUT_MS", 15000)) * time.Millisecond,
		LogLevel:              getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// defaultCompletionPhrases triggers finalization when matched alongside the
// minimum required fields. Override via COMPLETION_PHRASES.
var defaultCompletionPhrases = []string{
	"publish", "post it", "post the job", "that's all", "that is all",
	"we're done", "finish", "finalize", "looks good", "submit it",
}

func defaultFieldWeights() map[string]float64 {
	return map[string]float64{
		"title":           0.35,
		"description":     0.30,
		"location":        0.15,
		"employment_type": 0.10,
		"salary":          0.05,
		"skills":          0.05,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

// getEnvList parses a comma-separated list.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

// getEnvWeights parses "field:weight" pairs, e.g. "title:0.4,location:0.2".
func getEnvWeights(key string, defaultVal map[string]float64) map[string]float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	out := make(map[string]float64)
	for _, part := range strings.Split(val, ",") {
		name, weight, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(weight, 64)
		if err != nil || f <= 0 {
			continue
		}
		out[strings.TrimSpace(name)] = f
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
