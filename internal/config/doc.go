// Package config loads txtbundle settings from defaults, an optional config
// file, TXTBUNDLE_* environment variables and command-line flags, using
// viper for the layering.
//
// A config file may be any format viper understands, for example:
//
//	framing: sentinel
//	overwrite: false
//	log_level: debug
package config
