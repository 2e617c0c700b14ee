package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port           int           `yaml:"port" default:"8080"`
		Host           string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout    time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout   time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout    time.Duration `yaml:"idle_timeout" default:"60s"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		URL       string        `yaml:"url" default:"redis://localhost:6379"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db" default:"0"`
		Timeout   time.Duration `yaml:"timeout" default:"5s"`
		DetailTTL time.Duration `yaml:"detail_ttl" default:"10m"`
	} `yaml:"redis"`

	Auth struct {
		SessionSecret string `yaml:"session_secret"`
		LoginURL      string `yaml:"login_url" default:"/login"`
	} `yaml:"auth"`

	Payments struct {
		BaseURL       string        `yaml:"base_url"`
		APIKey        string        `yaml:"api_key"`
		WebhookSecret string        `yaml:"webhook_secret"`
		SuccessURL    string        `yaml:"success_url"`
		CancelURL     string        `yaml:"cancel_url"`
		PriceCentsDay int64         `yaml:"price_cents_per_day" default:"500"`
		Timeout       time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"payments"`

	Scheduler struct {
		SweepInterval time.Duration `yaml:"sweep_interval" default:"1m"`
		QueueKey      string        `yaml:"queue_key" default:"jobforge:expirations"`
	} `yaml:"scheduler"`

	Listings struct {
		PageSize int `yaml:"page_size" default:"7"`
	} `yaml:"listings"`

	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute" default:"120"`
		Burst             int `yaml:"burst" default:"30"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	// Expand $VAR syntax
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
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

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.DetailTTL = 10 * time.Minute

	config.Auth.LoginURL = "/login"

	config.Payments.PriceCentsDay = 500
	config.Payments.Timeout = 30 * time.Second

	config.Scheduler.SweepInterval = time.Minute
	config.Scheduler.QueueKey = "jobforge:expirations"

	config.Listings.PageSize = 7

	config.RateLimit.RequestsPerMinute = 120
	config.RateLimit.Burst = 30

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
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

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if sessionSecret := os.Getenv("SESSION_SECRET"); sessionSecret != "" {
		c.Auth.SessionSecret = sessionSecret
	}

	if loginURL := os.Getenv("LOGIN_URL"); loginURL != "" {
		c.Auth.LoginURL = loginURL
	}

	if apiKey := os.Getenv("PAYMENT_API_KEY"); apiKey != "" {
		c.Payments.APIKey = apiKey
	}

	if baseURL := os.Getenv("PAYMENT_BASE_URL"); baseURL != "" {
		c.Payments.BaseURL = baseURL
	}

	if webhookSecret := os.Getenv("PAYMENT_WEBHOOK_SECRET"); webhookSecret != "" {
		c.Payments.WebhookSecret = webhookSecret
	}

	if successURL := os.Getenv("PAYMENT_SUCCESS_URL"); successURL != "" {
		c.Payments.SuccessURL = successURL
	}

	if cancelURL := os.Getenv("PAYMENT_CANCEL_URL"); cancelURL != "" {
		c.Payments.CancelURL = cancelURL
	}

	if interval := os.Getenv("SCHEDULER_SWEEP_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Scheduler.SweepInterval = d
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
