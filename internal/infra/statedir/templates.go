package statedir

import "embed"

//go:embed templates/*
var templatesFS embed.FS
