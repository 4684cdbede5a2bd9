package cli

import (
	"strings"

	"github.com/bitrise-io/go-steputils/stepconf"
	"github.com/docker/go-units"
	"github.com/pkg/errors"
)

// Config ...
type Config struct {
	Debug         bool   `env:"JUNITPARSER_DEBUG"`
	MaxSourceSize string `env:"JUNITPARSER_MAX_SOURCE_SIZE"`
	HTTPRetries   int    `env:"JUNITPARSER_HTTP_RETRIES"`
	RedactSecrets string `env:"JUNITPARSER_REDACT_SECRETS"`
}

const (
	defaultMaxSourceSize = "100MiB"
	defaultHTTPRetries   = 3
)

// ParseConfig reads the configuration from the environment.
func ParseConfig() (Config, error) {
	config := Config{
		MaxSourceSize: defaultMaxSourceSize,
		HTTPRetries:   defaultHTTPRetries,
	}
	if err := stepconf.Parse(&config); err != nil {
		return Config{}, err
	}

	if _, err := config.MaxSourceBytes(); err != nil {
		return Config{}, err
	}
	if config.HTTPRetries < 0 {
		return Config{}, errors.Errorf("JUNITPARSER_HTTP_RETRIES must not be negative: %d", config.HTTPRetries)
	}

	return config, nil
}

// Print writes the configuration to the standard output, secrets masked.
func (c Config) Print() {
	stepconf.Print(c)
}

// MaxSourceBytes parses MaxSourceSize, for example "100MiB" or "512k". 0 means no limit.
func (c Config) MaxSourceBytes() (int64, error) {
	size, err := units.RAMInBytes(c.MaxSourceSize)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid JUNITPARSER_MAX_SOURCE_SIZE (%s)", c.MaxSourceSize)
	}
	return size, nil
}

// Secrets returns the newline separated values of RedactSecrets.
func (c Config) Secrets() []string {
	var secrets []string
	for _, s := range strings.Split(c.RedactSecrets, "\n") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}
