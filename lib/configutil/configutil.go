package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// reads a single json5 layer, (false, nil) means the file does not exist
func readLayer[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}
	return true, json5.Unmarshal(contents, out)
}

// ReadConfig reads a json5 configuration file, `name` should come with a
// file extension. A `<name>.local.<ext>` file sitting next to it is merged
// on top of the base file, taking priority wherever both set a value.
func ReadConfig[T any](name string) (T, error) {
	var out T

	dirname := filepath.Dir(name)
	prefixname, ext := splitExt(filepath.Base(name))
	localPath := filepath.Join(dirname, fmt.Sprintf("%s.local.%s", prefixname, ext))

	foundBase, err := readLayer(name, &out)
	if err != nil {
		return out, err
	}

	var override T
	foundLocal, err := readLayer(localPath, &override)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
	}

	if !foundBase && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig but it walks up the filesystem from the cwd
// until the root to find a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	root, err := filepath.Abs("/")
	if err != nil {
		return defaultOut, err
	}
	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for current != root {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			current = filepath.Join(current, "..")
			continue
		}
		if err != nil {
			return defaultOut, err
		}
		return config, nil
	}

	return defaultOut, os.ErrNotExist
}

// LoadDotEnv populates the process environment from a `.env` file in the
// working directory when one exists. A missing file is not an error.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// EnvOverride returns the value of the environment variable when set,
// otherwise the configured fallback.
func EnvOverride(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		slog.Info("overriding config value from environment", "key", key)
		return v
	}
	return fallback
}
