// Package config loads config.yaml, .env and APTPRICE_* overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const envPrefix = "APTPRICE_"

type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		MaxRequestSize int64         `yaml:"max_request_size"`
		FlashCapacity  int           `yaml:"flash_capacity"`
	} `yaml:"http"`
	ML struct {
		ModelType     string `yaml:"model_type"`
		ModelPath     string `yaml:"model_path"`
		WatchArtifact bool   `yaml:"watch_artifact"`
	} `yaml:"ml"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Log struct {
		Level   string `yaml:"level"`
		File    string `yaml:"file"`
		Console bool   `yaml:"console"`
	} `yaml:"log"`
}

func Default() *Config {
	var c Config
	c.Http.Port = 8501
	c.Http.Timeout = 30 * time.Second
	c.Http.MaxRequestSize = 64 << 10
	c.Http.FlashCapacity = 1024
	c.ML.ModelType = "decision_tree_regressor"
	c.ML.ModelPath = "models/decision_tree_model_for_sale.json"
	c.Log.Level = "info"
	return &c
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults and environment still apply.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(config); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPORT: %w", envPrefix, err)
		}
		c.Http.Port = port
	}
	if v, ok := lookup("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		c.Http.Timeout = d
	}
	if v, ok := lookup("MODEL_TYPE"); ok {
		c.ML.ModelType = v
	}
	if v, ok := lookup("MODEL_PATH"); ok {
		c.ML.ModelPath = v
	}
	if v, ok := lookup("DB_PATH"); ok {
		c.Database.Path = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.ML.ModelPath == "" {
		return errors.New("ml.model_path is required")
	}
	return nil
}
