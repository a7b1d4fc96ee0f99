// Package config loads runtime configuration for the notesum CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, everything else as JSON.
//  3. The GEMINI_API_KEY environment variable, used only when no API key was
//     configured so far.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-d string   path to the SQLite user database
//	-k string   Gemini API key
//	-m string   Gemini model name
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "database_path": "users.db",
//	  "model": "gemini-1.5-flash",
//	  "request_timeout": "60s",
//	  "speech_timeout": "15s"
//	}
package config
