/*
Copyright 2026 the Codesoom Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultSentinelUserID = 9999
)

type TestConfig struct {
	BaseURL           string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	ReadyTimeout      time.Duration
	SentinelUserID    int64
	SkipIntegration   bool
	ValidateResponses bool
	CleanupUsers      bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a configuration value is unusable.
func LoadTestConfig() (*TestConfig, error) {
	config := ReadTestConfig()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ReadTestConfig loads configuration like LoadTestConfig without validating it.
// Callers that apply command line overrides validate once those are parsed.
func ReadTestConfig() *TestConfig {
	loadEnvFile()

	return &TestConfig{
		BaseURL:           getStringWithDefault("API_BASE_URL", DefaultBaseURL),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:       getDurationWithDefault("TEST_TIMEOUT", 2*time.Minute),
		ReadyTimeout:      getDurationWithDefault("READY_TIMEOUT", 30*time.Second),
		SentinelUserID:    getInt64WithDefault("SENTINEL_USER_ID", DefaultSentinelUserID),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", true),
		CleanupUsers:      getBoolWithDefault("CLEANUP_USERS", true),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
	}
}

// AddFlags registers command line overrides for values already loaded from
// the environment.
func (c *TestConfig) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&c.BaseURL, "base-url", c.BaseURL, "Base URL of the user service.")
	f.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "Timeout for a single HTTP request.")
	f.DurationVar(&c.TestTimeout, "test-timeout", c.TestTimeout, "Timeout for a whole scenario.")
	f.Int64Var(&c.SentinelUserID, "sentinel-user-id", c.SentinelUserID, "User ID that does not belong to the scenario user.")
	f.DurationVar(&c.ReadyTimeout, "ready-timeout", c.ReadyTimeout, "How long to wait for the service to answer before giving up.")
	f.BoolVar(&c.ValidateResponses, "validate-responses", c.ValidateResponses, "Validate response bodies against the OpenAPI contract.")
	f.BoolVar(&c.LogRequests, "log-requests", c.LogRequests, "Log every request line and status.")
	f.BoolVar(&c.LogResponses, "log-responses", c.LogResponses, "Log every response body.")
}

// Validate checks the configuration is usable.
func (c *TestConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.BaseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API_BASE_URL %q: scheme must be http or https", c.BaseURL)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q: host is required", c.BaseURL)
	}

	if c.SentinelUserID <= 0 {
		return fmt.Errorf("SENTINEL_USER_ID must be positive, got %d", c.SentinelUserID)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	return nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getInt64WithDefault gets an integer from environment variable or returns default.
func getInt64WithDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

// envPaths are searched in order, relative to the working directory of the
// test binary, which go test sets to the package directory.
var envPaths = []string{ //nolint:gochecknoglobals
	"../../.env",    // From test/api/suites
	"../../../.env", // From test/contracts/consumer/users
	"test/.env",     // From the repository root (user-api-smoke)
}

func loadEnvFile() {
	candidates := envPaths
	if explicit := os.Getenv("ENV_FILE"); explicit != "" {
		candidates = []string{explicit}
	}

	var envPath string

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Variables already in the environment win over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
