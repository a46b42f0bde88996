// Package config loads nightdex settings from an optional TOML file and
// the environment.
//
// Precedence, lowest to highest: built-in defaults, the file, NIGHTDEX_*
// environment variables, then command-line flags applied by the caller.
//
//	[cache]
//	dir = ".nightdex/cache"
//	store = "file"
//
//	[embedding]
//	host = "http://localhost:11434/v1"
//	model = "embeddinggemma"
//	device = "auto"
//	batch_size = 32
//
//	[pipeline]
//	workers = 4
package config
