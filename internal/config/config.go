package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddress string `yaml:"listen_address"`
	DataPath      string `yaml:"data_path"`

	TableSize int `yaml:"table_size"`
	BarLimit  int `yaml:"bar_limit"`

	TreemapWidth   float64 `yaml:"treemap_width"`
	TreemapHeight  float64 `yaml:"treemap_height"`
	TreemapPadding float64 `yaml:"treemap_padding"`

	ChartWidth  int `yaml:"chart_width"`
	ChartHeight int `yaml:"chart_height"`

	RedisURL      string `yaml:"redis_url"`
	RedisPassword string `yaml:"redis_password"`
	RabbitURL     string `yaml:"rabbit_url"`
	RabbitPrefix  string `yaml:"rabbit_prefix"`
}

func Default() Config {
	return Config{
		ListenAddress:  ":8080",
		DataPath:       "data/cereals.csv",
		TableSize:      5,
		BarLimit:       20,
		TreemapWidth:   560,
		TreemapHeight:  360,
		TreemapPadding: 2,
		ChartWidth:     900,
		ChartHeight:    400,
		RabbitPrefix:   "cerealdash",
	}
}

// Load starts from Default, applies the YAML file named by CEREALDASH_CONFIG
// (if set) and then environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CEREALDASH_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	str := func(curr *string, env string) {
		if v := os.Getenv(env); v != "" {
			*curr = v
		}
	}
	num := func(curr *int, env string) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*curr = n
			}
		}
	}
	str(&c.ListenAddress, "LISTEN_ADDRESS")
	str(&c.DataPath, "DATA_PATH")
	str(&c.RedisURL, "REDIS_URL")
	str(&c.RedisPassword, "REDIS_PASSWORD")
	str(&c.RabbitURL, "RABBIT_URL")
	str(&c.RabbitPrefix, "RABBIT_PREFIX")
	num(&c.TableSize, "TABLE_SIZE")
	num(&c.BarLimit, "BAR_LIMIT")
	num(&c.ChartWidth, "CHART_WIDTH")
	num(&c.ChartHeight, "CHART_HEIGHT")
}
