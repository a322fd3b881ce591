package constants

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	pageMarkerPrefix = "--- [PAGE "
	pageMarkerSuffix = "] ---"
)

var markerDigits = regexp.MustCompile(`\d+`)

// PageMarker formats the page-boundary marker written between page sections
// of a document's text output.
func PageMarker(n int) string {
	return fmt.Sprintf("%s%d%s", pageMarkerPrefix, n, pageMarkerSuffix)
}

// ParsePageMarker reports whether a trimmed line is a page marker. The
// returned ordinal is 0 if the marker carries no parseable number.
func ParsePageMarker(line string) (int, bool) {
	if !strings.HasPrefix(line, pageMarkerPrefix) || !strings.HasSuffix(line, pageMarkerSuffix) {
		return 0, false
	}
	num := markerDigits.FindString(line)
	if num == "" {
		return 0, true
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, true
	}
	return n, true
}
