// Package config provides configuration management for the catalog tools.
//
// Settings are read from a YAML file, then overridden by environment
// variables. A .env file in the working directory is loaded first with
// LoadEnv so the same variables can be kept out of the shell:
//
//	_ = config.LoadEnv()
//	settings, err := config.Load("catalog.yaml")
//	if err != nil {
//	    return err
//	}
//	schema, err := settings.CatalogSchema()
//
// A missing config file yields DefaultSettings. Recognised variables are
// CATALOG_DOCUMENT, CATALOG_SITE_DIR, CATALOG_ARTWORK_DIR, CATALOG_PORT,
// CATALOG_SCHEMA, CATALOG_LOG_LEVEL and CATALOG_LOG_FILE.
//
// # Schema presets
//
// The page layout is data, not code. schema.preset picks one of the built-in
// section lists ("shelf", "collection", "vinyl"); schema.sections replaces it
// with an explicit list of {name, key, style}.
package config
