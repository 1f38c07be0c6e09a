package cli

// Package cli implements the traknab command line: the batch download run and
// the playlist import subcommand. Settings come from flags and TRAKNAB_*
// environment variables; the process exit code reflects the batch outcome.
