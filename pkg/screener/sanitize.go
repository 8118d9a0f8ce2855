package screener

import (
	"net/url"
	"regexp"
	"strings"
)

// maxFilenameLength caps derived filenames to avoid OS path limits.
const maxFilenameLength = 150

var invalidFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Filename derives a filesystem-safe name from a URL. The name is built from
// the host (port included), the port once more when one is explicit, and the
// path with slashes flattened to underscores. Every character outside
// [a-zA-Z0-9_.-] becomes an underscore and the result is truncated to 150
// characters. The same URL always yields the same name; distinct URLs can
// collide, in which case the later screenshot overwrites the earlier one.
func Filename(rawURL string) string {
	name := rawURL

	if u, err := url.Parse(rawURL); err == nil {
		name = u.Host
		if port := u.Port(); port != "" {
			name += "_" + port
		}
		name += strings.ReplaceAll(u.Path, "/", "_")
	}

	name = invalidFilenameChars.ReplaceAllString(name, "_")

	if len(name) > maxFilenameLength {
		name = name[:maxFilenameLength]
	}

	return name
}
