package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DestinationTable string         `yaml:"destination_table"`
	DynamoDB         DynamoDBConfig `yaml:"dynamodb"`
	NATS             NATSConfig     `yaml:"nats"`
	Logging          LoggingConfig  `yaml:"logging"`
}

type DynamoDBConfig struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // Optional: DynamoDB Local or a VPC endpoint
}

// NATSConfig enables archive notifications when URL is set
type NATSConfig struct {
	URL           string        `yaml:"url"`
	Subject       string        `yaml:"subject"`
	MaxReconnect  int           `yaml:"max_reconnect"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Enabled reports whether a NATS server is configured
func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

// LoadConfig reads the optional YAML file at path, applies environment
// overrides and defaults, and validates the result. An empty path or a
// missing file means configuration comes from the environment only.
func LoadConfig(path string) (*Config, error) {
	var config Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	applyEnv(&config)

	// Set defaults
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.NATS.Subject == "" {
		config.NATS.Subject = "archive.records"
	}
	if config.NATS.MaxReconnect == 0 {
		config.NATS.MaxReconnect = 10
	}
	if config.NATS.ReconnectWait == 0 {
		config.NATS.ReconnectWait = 2 * time.Second
	}

	if config.DestinationTable == "" {
		return nil, fmt.Errorf("destination table is not set (DESTINATION_TABLE or destination_table)")
	}

	return &config, nil
}

func applyEnv(config *Config) {
	overrides := map[string]*string{
		"DESTINATION_TABLE": &config.DestinationTable,
		"LOG_LEVEL":         &config.Logging.Level,
		"AWS_REGION":        &config.DynamoDB.Region,
		"DYNAMODB_ENDPOINT": &config.DynamoDB.Endpoint,
		"NATS_URL":          &config.NATS.URL,
		"NATS_SUBJECT":      &config.NATS.Subject,
	}
	for name, field := range overrides {
		if value, ok := os.LookupEnv(name); ok && value != "" {
			*field = value
		}
	}
}
