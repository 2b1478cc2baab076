package server

import (
	"path/filepath"
	"strings"
)

const defaultBaseName = "statement"

// downloadName returns "<base>.<ext>" where base is the uploaded file name
// without its directory and extension.
func downloadName(uploaded, ext string) string {
	base := filepath.Base(strings.ReplaceAll(uploaded, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = sanitizeFilename(base)
	if base == "" || base == "." || base == "/" {
		base = defaultBaseName
	}
	return base + "." + ext
}

// sanitizeFilename replaces characters that are unsafe in file paths or a
// Content-Disposition header and drops control characters.
func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	for _, c := range []string{"/", `\`, ":", "*", "?", `"`, "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	return strings.TrimSpace(name)
}
