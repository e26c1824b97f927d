package prompt

import (
	_ "embed"
	"strings"
)

//go:embed template/system.txt
var systemRaw string

// System returns the fixed system instruction for the tool loop.
func System() string {
	return strings.TrimSpace(systemRaw)
}
