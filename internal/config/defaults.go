package config

import "sort"

// KeySchema describes a known configuration key.
type KeySchema struct {
	Path        string      // Key name as written in the config file
	Description string      // Human-readable description for help text
	Default     interface{} // Default value
}

// KnownKeys is the registry of all configuration keys.
var KnownKeys = map[string]KeySchema{
	"log_level": {
		Path:        "log_level",
		Description: "Diagnostic log level (trace, debug, info, warn, error, disabled)",
		Default:     "warn",
	},
	"log_format": {
		Path:        "log_format",
		Description: "Diagnostic log format on stderr (console, json)",
		Default:     "console",
	},
	"debug": {
		Path:        "debug",
		Description: "Force debug logging regardless of log_level",
		Default:     false,
	},
	"no_color": {
		Path:        "no_color",
		Description: "Disable colored output",
		Default:     false,
	},
	"show_summary": {
		Path:        "show_summary",
		Description: "Append vehicle and roster counts to valid files",
		Default:     false,
	},
	"verbose": {
		Path:        "verbose",
		Description: "Print every diagnostic of an invalid file",
		Default:     false,
	},
	"fail_on_invalid": {
		Path:        "fail_on_invalid",
		Description: "Exit with status 1 when any file is invalid",
		Default:     false,
	},
	"strict_unknown_fields": {
		Path:        "strict_unknown_fields",
		Description: "Reject fields not declared by the schema",
		Default:     false,
	},
	"progress": {
		Path:        "progress",
		Description: "Show a spinner on stderr while scanning",
		Default:     true,
	},
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for key := range KnownKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
