package main

import (
	"fmt"
	"os"

	"github.com/FrenchMajesty/classresult"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// dbEnvVar names the environment variable holding the default SQLite database path
const dbEnvVar = "CLASSRESULT_DB"

// fileConfig is the YAML evaluation config
type fileConfig struct {
	ClassLabels      []uint  `yaml:"class_labels"`
	NullRejection    bool    `yaml:"null_rejection"`
	ClusterThreshold float64 `yaml:"cluster_threshold"`
	Database         string  `yaml:"database"`
	Pinecone         struct {
		Namespace string `yaml:"namespace"`
	} `yaml:"pinecone"`
}

// loadFileConfig reads the YAML config at path. An empty path yields the zero config.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// evaluatorConfig maps the file config onto an evaluator config
func (c fileConfig) evaluatorConfig() classresult.Config {
	return classresult.Config{
		ClassLabels:      c.ClassLabels,
		NullRejection:    c.NullRejection,
		ClusterThreshold: c.ClusterThreshold,
	}
}

// configFromFlags loads the config named by --config
func configFromFlags(cmd *cobra.Command) (fileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	return loadFileConfig(path)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then the CLASSRESULT_DB env var.
func resolveDBPath(cmd *cobra.Command, cfg fileConfig) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	if cfg.Database != "" {
		return cfg.Database, nil
	}
	if p := os.Getenv(dbEnvVar); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("no database path: pass --db, set database in the config or %s", dbEnvVar)
}
