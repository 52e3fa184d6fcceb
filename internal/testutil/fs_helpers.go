// Package testutil provides fleet file fixtures and filesystem helpers for
// fleetcheck tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// DefaultRosterEntry is the roster entry used when none is given.
const DefaultRosterEntry = `{"fleet_selection":{"use_numeric_sorting":true}}`

type fleetConfig struct {
	manufacturer string
	model        string
	roster       []string
	omit         map[string]bool
}

// FleetOption is a functional option for FleetJSON
type FleetOption func(*fleetConfig)

// WithManufacturer sets the vehicle manufacturer
func WithManufacturer(name string) FleetOption {
	return func(c *fleetConfig) {
		c.manufacturer = name
	}
}

// WithModel sets the vehicle model
func WithModel(name string) FleetOption {
	return func(c *fleetConfig) {
		c.model = name
	}
}

// WithRoster replaces the roster with raw JSON entries; no entries gives an empty roster.
func WithRoster(entries ...string) FleetOption {
	return func(c *fleetConfig) {
		c.roster = entries
	}
}

// Without drops a vehicle field (manufacturer, model or roster)
func Without(field string) FleetOption {
	return func(c *fleetConfig) {
		c.omit[field] = true
	}
}

// FleetJSON returns a compact single-vehicle fleet document. Fields are
// written in the order manufacturer, model, roster.
func FleetJSON(opts ...FleetOption) string {
	c := &fleetConfig{
		manufacturer: "Acme",
		model:        "X1",
		roster:       []string{DefaultRosterEntry},
		omit:         map[string]bool{},
	}
	for _, opt := range opts {
		opt(c)
	}

	var fields []string
	if !c.omit["manufacturer"] {
		fields = append(fields, `"manufacturer":`+strconv.Quote(c.manufacturer))
	}
	if !c.omit["model"] {
		fields = append(fields, `"model":`+strconv.Quote(c.model))
	}
	if !c.omit["roster"] {
		fields = append(fields, fmt.Sprintf(`"roster":[%s]`, strings.Join(c.roster, ",")))
	}
	return fmt.Sprintf(`{"vehicles":[{%s}]}`, strings.Join(fields, ","))
}

// WriteTree creates dir and writes each file relative to it. Returns dir.
func WriteTree(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	for name, content := range files {
		WriteFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
