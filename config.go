package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type configuration struct {
	Content     string `json:"content"`
	Static      string `json:"static"`
	Public      string `json:"public"`
	Template    string `json:"template"`
	BasePath    string `json:"basepath"`
	Workers     int    `json:"workers"`
	MetricsFile string `json:"metrics_file"`
}

func defaultConfig() configuration {
	return configuration{
		Content:  "./content",
		Static:   "./static",
		Public:   "./public",
		Template: "./template.html",
		BasePath: "/",
		Workers:  4,
	}
}

// loadConfig reads the config at path. A missing file is not an error, the
// defaults are used instead.
func loadConfig(path string) (configuration, error) {
	fileBytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return configuration{}, errors.Wrap(err, "could not open config")
	}
	return configFromBytes(fileBytes)
}

func configFromBytes(b []byte) (configuration, error) {
	config := defaultConfig()
	if err := json.Unmarshal(b, &config); err != nil {
		return configuration{}, errors.Wrap(err, "could not parse config")
	}
	config.BasePath = normalizeBasePath(config.BasePath)
	return config, nil
}

// applyEnv overrides paths with the MDSITE_* variables that are set.
func (c *configuration) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"MDSITE_CONTENT", &c.Content},
		{"MDSITE_PUBLIC", &c.Public},
		{"MDSITE_BASEPATH", &c.BasePath},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}
	c.BasePath = normalizeBasePath(c.BasePath)
}

// normalizeBasePath makes sure a path base starts and ends with a slash.
// Absolute URLs only get the trailing slash.
func normalizeBasePath(p string) string {
	if !strings.Contains(p, "://") && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
