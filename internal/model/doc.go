package model

// Package model defines domain data structures used across the tool: track
// records read from the tracks file, per-track outcomes of a batch run, and
// the status enum those outcomes move through.
