// Package config centralises all environment configuration for askrepo.
// It should be imported only by the binaries under cmd/ (and test code). Business-logic
// layers receive an already-built Config instance via dependency-injection.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported completion back ends.
const (
	ProviderAnthropic = "anthropic"
	ProviderVertex    = "vertex"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
)

// Config holds every runtime option the binaries need.
// Keep it flat and simple; prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port               string
	Env                string
	CorsAllowedOrigins []string

	// Corpus
	MongoURI   string
	DBName     string
	CorpusFile string

	// Completion service
	LLMProvider  string
	LLMModel     string
	LLMMaxTokens int

	AnthropicAPIKey string
	GeminiAPIKey    string
	OpenAIAPIKey    string

	// Vertex AI
	ProjectID       string
	Location        string
	CredentialsFile string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
// Credentials are optional here: a missing key degrades the completion client
// instead of stopping the process.
func Load() Config {
	// godotenv.Load() is a no‑op if .env doesn't exist, so it is safe in production.
	_ = godotenv.Load()

	return Config{
		Port:               getEnv("PORT", "8000"),
		Env:                getEnv("APP_ENV", "development"),
		CorsAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		DBName:             getEnv("MONGODB_DB", "askrepo"),
		CorpusFile:         getEnv("CORPUS_FILE", "data/corpus.json"),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", ProviderAnthropic)),
		LLMModel:           os.Getenv("LLM_MODEL"),
		LLMMaxTokens:       getInt("LLM_MAX_TOKENS", 4096),
		AnthropicAPIKey:    os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		ProjectID:          os.Getenv("GCP_PROJECT_ID"),
		Location:           getEnv("GCP_LOCATION", "us-central1"),
		CredentialsFile:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		ReadTimeout:        getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:       getDuration("WRITE_TIMEOUT_SEC", 300),
	}
}

// Validate reports settings that can never work, as opposed to missing credentials.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderAnthropic, ProviderVertex, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.LLMMaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLMMaxTokens)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// IsDev reports whether the process runs in development mode.
func (c Config) IsDev() bool {
	return c.Env != "production"
}

// UseMongo reports whether the corpus is read from MongoDB rather than CorpusFile.
func (c Config) UseMongo() bool {
	return c.MongoURI != ""
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getList splits a comma separated variable, dropping blanks.
func getList(key, defaultVal string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultVal), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
