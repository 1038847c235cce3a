// Package config loads and validates environment configuration.
//
// All empirically tuned classification constants are exposed here as named,
// overridable settings; code never hardcodes them.
package config
