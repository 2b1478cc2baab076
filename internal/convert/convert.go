// Package convert parses MT940 text and routes the batch to the serializer
// for the requested output format.
package convert

import (
	"fmt"

	"github.com/cleared-dev/mt940convert/internal/model"
	"github.com/cleared-dev/mt940convert/internal/mt940"
	"github.com/cleared-dev/mt940convert/internal/serialize"
)

// Result is the output of one conversion.
type Result struct {
	Content   []byte
	Extension string
	Format    Format
	Count     int // transactions written
}

// Option configures a single Convert call.
type Option func(*options)

type options struct {
	parser mt940.Parser
}

// WithParser selects the MT940 parser. The default is the fixed-offset parser.
func WithParser(p mt940.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

// Convert parses raw and serializes it in the format named by tag.
// An unknown tag fails with ErrUnsupportedOutputType before parsing.
func Convert(raw, tag string, opts ...Option) (Result, error) {
	format, err := ParseFormat(tag)
	if err != nil {
		return Result{}, err
	}
	return ConvertFormat(raw, format, opts...)
}

// ConvertFormat is Convert for an already parsed Format.
func ConvertFormat(raw string, format Format, opts ...Option) (Result, error) {
	if _, ok := formatInfo[format]; !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedOutputType, format)
	}

	o := options{parser: &mt940.FixedParser{}}
	for _, opt := range opts {
		opt(&o)
	}

	batch := o.parser.Parse(raw)
	content, err := serializeBatch(batch, format)
	if err != nil {
		return Result{}, &SerializationError{Format: format, Err: err}
	}

	return Result{
		Content:   content,
		Extension: format.Extension(),
		Format:    format,
		Count:     len(batch),
	}, nil
}

func serializeBatch(batch model.Batch, format Format) ([]byte, error) {
	switch format {
	case FormatExcel:
		return serialize.Spreadsheet(batch)
	case FormatXML:
		out, err := serialize.XML(batch)
		return []byte(out), err
	case FormatOFX:
		return serialize.OFX(batch)
	default:
		return nil, fmt.Errorf("no serializer for %s", format)
	}
}
