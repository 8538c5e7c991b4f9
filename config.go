// Copyright (C) Pagoda Box, Inc - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential

package gateway

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v2"
)

// Duration is a wrapper around time.Duration that implements yaml.Unmarshaler
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// ToDuration converts the custom Duration type back to time.Duration
func (d *Duration) ToDuration() time.Duration {
	return time.Duration(*d)
}

// RateLimitConfig enables the per-client token bucket when Capacity > 0
type RateLimitConfig struct {
	Capacity int      `yaml:"capacity"`
	Reset    Duration `yaml:"reset"`
}

// Config is the on-disk configuration for the gateway
type Config struct {
	Listen          string           `yaml:"listen"`
	HealthPulse     int              `yaml:"health_pulse"`
	DialTimeout     Duration         `yaml:"dial_timeout"`
	ResponseTimeout Duration         `yaml:"response_timeout"`
	RateLimit       *RateLimitConfig `yaml:"rate_limit"`
	Routes          []Route          `yaml:"routes"`
}

// LoadConfig reads a YAML config file on top of the defaults, so a partial
// file (say, just a listen address) keeps the stock routing table.
func LoadConfig(path string) (*Config, error) {
	rawYaml, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(rawYaml, config); err != nil {
		return nil, fmt.Errorf("Failed to parse config '%s' - %s", path, err.Error())
	}
	return config, nil
}

// DefaultConfig returns the stock foodgram deployment configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:          "0.0.0.0:80",
		DialTimeout:     Duration(10 * time.Second),
		ResponseTimeout: Duration(30 * time.Second),
		Routes:          DefaultRoutes(),
	}
}

// DefaultRoutes is the foodgram routing table: admin and REST-framework
// static assets plus user media from disk, api and django-admin proxied to
// the backend, redoc-with-fallback for the api docs, and the built frontend
// bundle behind a single-page-app catch-all.
func DefaultRoutes() []Route {
	return []Route{
		{Prefix: "/static/admin/", Kind: KindAlias, Target: "/var/html/static/admin/"},
		{Prefix: "/static/rest_framework/", Kind: KindAlias, Target: "/var/html/static/rest_framework/"},
		{Prefix: "/media/", Kind: KindAlias, Target: "/var/html/media/"},
		{Prefix: "/admin/", Kind: KindProxy, Target: "http://backend:8000/admin/"},
		{Prefix: "/api/docs/", Kind: KindStatic, Target: "/usr/share/nginx/html", Fallback: "redoc.html"},
		{Prefix: "/api/", Kind: KindProxy, Target: "http://backend:8000"},
		{Prefix: "/", Kind: KindStatic, Target: "/usr/share/nginx/html", Fallback: "index.html",
			IndexFiles: []string{"index.html", "index.htm"}},
	}
}

// Apply pushes the configuration into the package: transport timeouts first
// (the reverse proxies capture them), then the routing table and the
// optional rate limiter.
func (c *Config) Apply() error {
	if c.DialTimeout > 0 {
		DialTimeout = c.DialTimeout.ToDuration()
	}
	if c.ResponseTimeout > 0 {
		ResponseHeaderTimeout = c.ResponseTimeout.ToDuration()
	}
	if c.RateLimit != nil && c.RateLimit.Capacity > 0 {
		EnableRateLimit(c.RateLimit.Reset.ToDuration(), c.RateLimit.Capacity)
	}
	return UpdateRoutes(c.Routes)
}
