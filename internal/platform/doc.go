package platform

// Package platform contains OS integration and external tooling glue:
// filesystem helpers for output naming and cleanup, tool discovery on PATH,
// and playlist import via the ytdlp library.
