package config

// Package config loads the tracks file into an ordered list of track records
// and assembles run settings from defaults, environment variables and flags.
