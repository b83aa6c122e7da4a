// Package config loads client settings for the SDK using Viper, with
// environment variable overrides and hot-reloading.
//
// The package covers:
//   - API endpoint and org credentials
//   - Pagination defaults
//   - Circuit breaker thresholds for the transport
//   - The optional response cache (in-process or redis)
//   - Logging (level, format, Sentry)
//
// # Configuration Loading
//
// Load configuration from a file:
//
//	cfg, err := config.Load("./config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or build one programmatically starting from defaults:
//
//	cfg := config.Default()
//	cfg.API.BaseURL = "https://api.example.com/v2"
//	cfg.API.OrgCode = "acme"
//
// # Configuration Format
//
// Supports YAML, JSON, and TOML formats. Example YAML:
//
//	api:
//	  base_url: https://api.example.com/v2
//	  org_code: acme
//	  client_key: abcdef
//
//	paging:
//	  default_page_size: 25
//
//	logger:
//	  level: debug
//	  format: json
//
// Environment variables prefixed with ORGCORE_ take precedence over file
// configuration.
//
// # Hot Reloading
//
// Watch the configuration file for changes:
//
//	cfg.Watch(func(cfg *config.Config) {
//	    log.Println("configuration reloaded")
//	})
package config
