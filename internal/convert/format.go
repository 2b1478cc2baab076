package convert

import (
	"fmt"
	"strings"
)

// Format is an output format. The set is closed: only the constants below
// are valid, and ParseFormat is the only way to obtain one from text.
type Format int

const (
	FormatExcel Format = iota + 1
	FormatXML
	FormatOFX
)

var formatInfo = map[Format]struct {
	tag, ext, contentType string
}{
	FormatExcel: {"excel", "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	FormatXML:   {"xml", "xml", "application/xml"},
	FormatOFX:   {"ofx", "ofx", "application/x-ofx"},
}

// Formats returns every supported format in declaration order.
func Formats() []Format {
	return []Format{FormatExcel, FormatXML, FormatOFX}
}

// ParseFormat maps an output-type tag to its Format. Tags are matched
// exactly; anything else is ErrUnsupportedOutputType.
func ParseFormat(tag string) (Format, error) {
	for _, f := range Formats() {
		if formatInfo[f].tag == tag {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedOutputType, tag, strings.Join(Tags(), ", "))
}

// Tags returns the accepted output-type tags.
func Tags() []string {
	tags := make([]string, 0, len(formatInfo))
	for _, f := range Formats() {
		tags = append(tags, f.String())
	}
	return tags
}

// String returns the output-type tag, e.g. "excel".
func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.tag
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the conventional file extension without the dot.
func (f Format) Extension() string {
	return formatInfo[f].ext
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	return formatInfo[f].contentType
}
