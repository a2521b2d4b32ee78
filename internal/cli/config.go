package cli

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/birdayz/tau/kserde"
)

// ReferenceValues is the input sequence replayed when none is configured.
var ReferenceValues = []float64{0.0, 3.2, 2.1, 2.9, 8.3, 5.7}

// Config describes the input and tuning of the pipelines. It can be loaded
// from a YAML file; flags given on the command line take precedence.
type Config struct {
	// Values are replayed into the source signal in order.
	Values []float64 `yaml:"values"`
	// Rate paces the replay in values per second. Zero replays at once.
	Rate float64 `yaml:"rate"`
	// Weight is the weighting factor of the weighted moving average.
	Weight float64      `yaml:"weight"`
	Filter FilterConfig `yaml:"filter"`
	Buffer BufferConfig `yaml:"buffer"`
	Kafka  KafkaConfig  `yaml:"kafka"`
}

type FilterConfig struct {
	Min float64 `yaml:"min"`
}

type BufferConfig struct {
	Count    int           `yaml:"count"`
	Interval time.Duration `yaml:"interval"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	Topic      string   `yaml:"topic"`
	Partitions int32    `yaml:"partitions"`
	Produce    bool     `yaml:"produce"`
	Strict     bool     `yaml:"strict"`
	// Encoding is the record value format, one of kserde.Float64Encodings.
	Encoding string `yaml:"encoding"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Values: ReferenceValues,
		Weight: 2,
		Buffer: BufferConfig{
			Count:    2,
			Interval: 5 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:    []string{"localhost:9092"},
			Topic:      "tau-values",
			Partitions: 1,
			Encoding:   "text",
		},
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for values no pipeline can run with.
func (c Config) Validate() error {
	var err error
	if c.Rate < 0 {
		err = multierr.Append(err, fmt.Errorf("rate must not be negative, got %v", c.Rate))
	}
	if c.Buffer.Count <= 0 {
		err = multierr.Append(err, fmt.Errorf("buffer count must be positive, got %d", c.Buffer.Count))
	}
	if c.Buffer.Interval <= 0 {
		err = multierr.Append(err, fmt.Errorf("buffer interval must be positive, got %s", c.Buffer.Interval))
	}
	if c.Kafka.Partitions <= 0 {
		err = multierr.Append(err, fmt.Errorf("kafka partitions must be positive, got %d", c.Kafka.Partitions))
	}
	if _, cerr := kserde.Float64Codec(c.Kafka.Encoding); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("kafka %w", cerr))
	}
	return err
}
