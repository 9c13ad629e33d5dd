package config

import (
	"fmt"
	"time"
)

// ServiceName tags logs, traces and APM data emitted by this service.
const ServiceName = "happy"

// DefaultListCacheTTL is used when redis.list_cache_ttl is not set.
const DefaultListCacheTTL = 30 * time.Second

// Storage drivers accepted by UploadConfig.Driver.
const (
	UploadDriverLocal = "local"
	UploadDriverMinio = "minio"
)

// UploadConfig controls where orphanage photos are stored.
type UploadConfig struct {
	// Driver selects the storage backend: "local" or "minio".
	Driver string `koanf:"driver" validate:"omitempty,oneof=local minio"`

	// Dir is the local directory for the "local" driver, relative to the
	// process working directory.
	Dir string `koanf:"dir"`

	// MaxBodySize is the Echo BodyLimit expression for a whole request
	// (e.g. "20M").
	MaxBodySize string `koanf:"max_body_size"`

	Minio MinioConfig `koanf:"minio"`
}

// MinioConfig holds the S3-compatible object storage settings used by the
// "minio" driver.
type MinioConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`

	// PublicURL is the base URL clients use to fetch objects. When empty
	// the endpoint URL is used.
	PublicURL string `koanf:"public_url"`
}

// DefaultUploadConfig stores files on the local disk under uploads/.
func DefaultUploadConfig() *UploadConfig {
	return &UploadConfig{
		Driver:      UploadDriverLocal,
		Dir:         "uploads",
		MaxBodySize: "20M",
	}
}

func (u *UploadConfig) applyDefaults() {
	defaults := DefaultUploadConfig()
	if u.Driver == "" {
		u.Driver = defaults.Driver
	}
	if u.Dir == "" {
		u.Dir = defaults.Dir
	}
	if u.MaxBodySize == "" {
		u.MaxBodySize = defaults.MaxBodySize
	}
}

// Validate checks driver-specific requirements that struct tags can't express.
func (u *UploadConfig) Validate() error {
	if u.Driver != UploadDriverMinio {
		return nil
	}
	m := u.Minio
	if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
		return fmt.Errorf("minio driver requires endpoint, access_key, secret_key and bucket")
	}
	return nil
}

// EventsConfig configures publication of domain events to Kafka.
// An empty broker list disables publishing.
type EventsConfig struct {
	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`
}

func (e *EventsConfig) applyDefaults() {
	if e.KafkaTopic == "" {
		e.KafkaTopic = "happy.orphanages"
	}
}

// Enabled reports whether any broker is configured.
func (e *EventsConfig) Enabled() bool {
	return len(e.KafkaBrokers) > 0
}
