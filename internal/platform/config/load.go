package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix        = "APP_"
	envFileSuffix    = "_file"
	defaultConfigDir = "configs"
)

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	configDir string
	environ   func() []string
}

// WithConfigDir sets the directory where config YAML files are located.
// Defaults to "configs" relative to the working directory.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) {
		o.configDir = dir
	}
}

// WithEnviron replaces os.Environ as the source of APP_ variables.
func WithEnviron(environ func() []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load reads configuration using a 4-layer hierarchy (highest precedence last):
//
//  0. Built-in defaults
//  1. Base config ({configDir}/base.yaml)
//  2. Profile config ({configDir}/{profile}.yaml)
//  3. Environment variables (APP_ prefix)
//
// Environment variables are matched against the keys already loaded, so
// underscores inside a field name are not mistaken for nesting:
//
//	APP_SERVER_READ_TIMEOUT          -> server.read_timeout
//	APP_STORAGE_PATH                 -> storage.path
//	APP_CLIENTS_DEPOSITION_API_TOKEN -> clients.deposition.api_token
//
// Any known key can also be given as a file: APP_<KEY>_FILE names a file
// whose trimmed content becomes the value. This is how deployments mount
// the deposition token as a secret.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := &loadOptions{configDir: defaultConfigDir, environ: os.Environ}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	for _, name := range []string{"base", profile} {
		path := filepath.Join(o.configDir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s config %s: %w", name, path, err)
		}
	}

	lookup := buildEnvLookup(k.Keys())
	var fileErrs []error

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:      envPrefix,
		EnvironFunc: o.environ,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

			if koanfKey, ok := lookup[key]; ok {
				return koanfKey, value
			}

			if base, ok := strings.CutSuffix(key, envFileSuffix); ok {
				if koanfKey, known := lookup[base]; known {
					content, err := readSecretFile(value)
					if err != nil {
						fileErrs = append(fileErrs, fmt.Errorf("%s%s: %w", envPrefix, strings.ToUpper(key), err))
						return "", nil
					}
					return koanfKey, content
				}
			}

			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}
	if err := errors.Join(fileErrs...); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func readSecretFile(path string) (string, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// validateProfile checks that the profile name is safe and non-empty.
func validateProfile(profile string) error {
	if strings.TrimSpace(profile) == "" {
		return errors.New("profile must not be empty")
	}
	if strings.ContainsAny(profile, `/\`) {
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	}
	if strings.Contains(profile, "..") {
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

// buildEnvLookup maps the env form of every loaded key (dots replaced by
// underscores) back to the dotted key.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup[strings.ReplaceAll(key, ".", "_")] = key
	}
	return lookup
}
