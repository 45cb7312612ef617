package db

import (
	"strings"

	"github.com/google/uuid"
)

// newID returns prefix_<suffix> where suffix is the first 12 hex chars of a
// random UUID. Random ids replace the wall-clock suffixes used historically,
// which collide under rapid successive creates.
func newID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return prefix + "_" + suffix
}
