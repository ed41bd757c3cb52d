package main

import "embed"

// dataFS carries the default level and question bank so the binary runs
// without a data directory next to it.
//
//go:embed data/level.yaml data/questions.yaml
var dataFS embed.FS
