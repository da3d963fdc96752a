// Package server loads the configuration file of newtube.
//
// References to environment variables (`${NAME}` or `$NAME`) in the file are
// expanded before parsing, so secrets can be passed as environment variables.
package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid")

// Duration is time.Duration written like "10s" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := ""
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: line %d: %w", ErrInvalidConfig, node.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Mux       MuxConfig       `yaml:"mux"`
	Storage   StorageConfig   `yaml:"storage"`
	AI        AIConfig        `yaml:"ai"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
}

type ServerConfig struct {
	Port int `yaml:"port"`

	// origins allowed by CORS. Empty means no CORS headers.
	AllowOrigins []string `yaml:"allowOrigins,omitempty"`
}

type DatabaseConfig struct {
	URI                 string   `yaml:"uri"`
	MaxConns            int32    `yaml:"maxConns,omitempty"`
	SchemaCheckInterval Duration `yaml:"schemaCheckInterval,omitempty"`
}

type AuthConfig struct {
	// HS256 or RS256
	Algorithm string `yaml:"algorithm"`

	// HMAC secret for HS256
	Secret string `yaml:"secret,omitempty"`

	// PEM encoded public key for RS256
	PublicKey string `yaml:"publicKey,omitempty"`

	Issuer string   `yaml:"issuer,omitempty"`
	Leeway Duration `yaml:"leeway,omitempty"`

	// signing secret of the user synchronization webhook, like "whsec_...".
	WebhookSecret string `yaml:"webhookSecret"`
}

type MuxConfig struct {
	TokenId       string `yaml:"tokenId"`
	TokenSecret   string `yaml:"tokenSecret"`
	WebhookSecret string `yaml:"webhookSecret"`

	// origin allowed to upload files directly.
	CORSOrigin string `yaml:"corsOrigin,omitempty"`
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	AccessKeyId     string `yaml:"accessKeyId,omitempty"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty"`
	PublicUrl       string `yaml:"publicUrl"`
}

type AIConfig struct {
	APIKey     string `yaml:"apiKey"`
	TextModel  string `yaml:"textModel,omitempty"`
	ImageModel string `yaml:"imageModel,omitempty"`
}

type RateLimitConfig struct {
	Requests  int      `yaml:"requests"`
	Window    Duration `yaml:"window"`
	ExpiresIn Duration `yaml:"expiresIn,omitempty"`
}

type WorkflowConfig struct {
	Concurrency    int      `yaml:"concurrency"`
	Lease          Duration `yaml:"lease"`
	Timeout        Duration `yaml:"timeout"`
	MaxAttempts    int      `yaml:"maxAttempts"`
	InitialBackoff Duration `yaml:"initialBackoff"`
	MaxBackoff     Duration `yaml:"maxBackoff"`

	// loop policy of the worker. See recurring.ParsePolicy.
	Policy string `yaml:"policy"`
}

// Default returns the configuration used for missing items.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			SchemaCheckInterval: Duration(30 * time.Second),
		},
		Auth: AuthConfig{Algorithm: "RS256", Leeway: Duration(5 * time.Second)},
		RateLimit: RateLimitConfig{
			Requests:  50,
			Window:    Duration(10 * time.Second),
			ExpiresIn: Duration(3 * time.Minute),
		},
		Workflow: WorkflowConfig{
			Concurrency:    2,
			Lease:          Duration(15 * time.Minute),
			Timeout:        Duration(10 * time.Minute),
			MaxAttempts:    5,
			InitialBackoff: Duration(10 * time.Second),
			MaxBackoff:     Duration(10 * time.Minute),
			Policy:         "forever:2s",
		},
	}
}

// Load reads the configuration file.
func Load(file string) (Config, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}
	return Unmarshal(content)
}

// Unmarshal parses the configuration, after expanding environment variables.
func Unmarshal(content []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(content))), &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the items every command needs.
func (c Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("%w: database.uri is required", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || 65535 < c.Server.Port {
		return fmt.Errorf("%w: server.port is out of range: %d", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Auth.Algorithm {
	case "HS256", "RS256":
	default:
		return fmt.Errorf("%w: auth.algorithm should be HS256 or RS256: %s", ErrInvalidConfig, c.Auth.Algorithm)
	}
	if c.Workflow.MaxAttempts < 1 {
		return fmt.Errorf("%w: workflow.maxAttempts should be positive", ErrInvalidConfig)
	}
	return nil
}
