package models

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the production content host. A localhost
	// deployment resolves to the empty string instead, which switches
	// the loader to the local assets directory.
	DefaultBaseURL = "https://andrkelb-school.github.io/SW-Situation-1-BauMax"

	DefaultCourseID  = "baumax"
	DefaultContainer = "kurs-container"
	DefaultListen    = ":8080"

	// DefaultCacheDuration matches the upstream default of 3,600,000 ms.
	DefaultCacheDuration = time.Hour
)

// LoaderConfig holds the recognized configuration keys. Values come from
// an optional YAML file; CLI flags override individual fields.
type LoaderConfig struct {
	BaseURL         string `yaml:"baseUrl"`
	CourseID        string `yaml:"courseId"`
	Container       string `yaml:"container"` // id of the mount element in rendered pages
	CacheEnabled    *bool  `yaml:"cacheEnabled"`
	CacheDurationMS int64  `yaml:"cacheDuration"` // milliseconds

	Listen       string `yaml:"listen"`
	AssetsDir    string `yaml:"assetsDir"` // fetch source when baseUrl is empty
	ChapterMap   string `yaml:"chapterMap"`
	StripScripts bool   `yaml:"stripScripts"`
}

// LoadConfig reads a YAML config file and applies defaults. A missing
// file is not an error; defaults are returned instead.
func LoadConfig(path string) (*LoaderConfig, error) {
	cfg := &LoaderConfig{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills unset fields with the documented defaults.
func (c *LoaderConfig) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.CourseID == "" {
		c.CourseID = DefaultCourseID
	}
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.CacheDurationMS <= 0 {
		c.CacheDurationMS = DefaultCacheDuration.Milliseconds()
	}
}

// CacheTTL returns the cache duration as a time.Duration.
func (c *LoaderConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheDurationMS) * time.Millisecond
}

// CacheIsEnabled reports the cacheEnabled key, defaulting to true.
func (c *LoaderConfig) CacheIsEnabled() bool {
	return c.CacheEnabled == nil || *c.CacheEnabled
}

// ResolveBaseURL applies the localhost override: when the serving host is
// localhost or 127.0.0.1 the base URL collapses to the empty string and
// content is read from the local assets directory.
func (c *LoaderConfig) ResolveBaseURL(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	if host == "localhost" || host == "127.0.0.1" {
		return ""
	}
	return strings.TrimSuffix(c.BaseURL, "/")
}
