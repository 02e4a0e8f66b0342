// Package report renders scan and cleaning results into the output
// artifacts: a CSV records file, a plain-text findings report, and a
// cleaning change log.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// EncodingError indicates a textual artifact could not be written because
// its content is not representable in the output encoding. The computed
// results are unaffected; only the named file is missing.
type EncodingError struct {
	Path string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode report %s", e.Path)
}

// TimestampedPath builds an artifact path from the source workbook path:
// the source base name plus a suffix and a timestamp, so repeated runs
// never collide and the source is never overwritten. An empty dir places
// the artifact next to the source.
func TimestampedPath(source, dir, suffix, ext, layout string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if dir == "" {
		dir = filepath.Dir(source)
	}
	name := fmt.Sprintf("%s_%s_%s%s", base, suffix, now.Format(layout), ext)
	return filepath.Join(dir, name)
}
