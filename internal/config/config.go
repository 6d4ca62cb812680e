package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	// Upstream covers every outbound HTTP call made by the direct-API
	// adapters. RateLimit is requests per minute per upstream host.
	Upstream struct {
		RequestTimeout time.Duration `yaml:"request_timeout"`
		UserAgent      string        `yaml:"user_agent"`
		RateLimit      int           `yaml:"rate_limit"`
		Burst          int           `yaml:"burst"`
	} `yaml:"upstream"`

	Sources struct {
		RemoteOK struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"remoteok"`
		Arbeitnow struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"arbeitnow"`
		Remotive struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"remotive"`
		Jobicy struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"jobicy"`
	} `yaml:"sources"`

	// Jobspy configures the batch scraping engine that serves every
	// library-backed source in one call.
	Jobspy struct {
		BaseURL    string        `yaml:"base_url"`
		APIKey     string        `yaml:"api_key"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
	} `yaml:"jobspy"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Upstream.RequestTimeout = 30 * time.Second
	config.Upstream.UserAgent = "Mozilla/5.0 (compatible; jobgate/1.0)"
	config.Upstream.RateLimit = 60
	config.Upstream.Burst = 5

	config.Sources.RemoteOK.BaseURL = "https://remoteok.com/api"
	config.Sources.Arbeitnow.BaseURL = "https://www.arbeitnow.com/api/job-board-api"
	config.Sources.Remotive.BaseURL = "https://remotive.com/api/remote-jobs"
	config.Sources.Jobicy.BaseURL = "https://jobicy.com/api/v2/remote-jobs"

	config.Jobspy.BaseURL = "http://localhost:8000"
	config.Jobspy.Timeout = 60 * time.Second
	config.Jobspy.MaxRetries = 3

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if userAgent := os.Getenv("UPSTREAM_USER_AGENT"); userAgent != "" {
		c.Upstream.UserAgent = userAgent
	}

	if timeout := os.Getenv("UPSTREAM_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Upstream.RequestTimeout = d
		}
	}

	if rateLimit := os.Getenv("UPSTREAM_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.Upstream.RateLimit = n
		}
	}

	if baseURL := os.Getenv("JOBSPY_BASE_URL"); baseURL != "" {
		c.Jobspy.BaseURL = baseURL
	}

	if apiKey := os.Getenv("JOBSPY_API_KEY"); apiKey != "" {
		c.Jobspy.APIKey = apiKey
	}

	if timeout := os.Getenv("JOBSPY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Jobspy.Timeout = d
		}
	}

	if retries := os.Getenv("JOBSPY_MAX_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			c.Jobspy.MaxRetries = n
		}
	}
}
