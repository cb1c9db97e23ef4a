package problems

import _ "embed"

// defaultDatabase is the bundled problem collection, used when no
// database file is configured.
//
//go:embed problems.json
var defaultDatabase []byte
