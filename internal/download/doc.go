package download

// Package download implements the batch pipeline on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp): it walks the configured tracks strictly in
// order, resolves output names and collisions, fetches audio through an
// injectable Fetcher and reports one outcome per track.
