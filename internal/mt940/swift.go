package mt940

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mt940convert/internal/model"
)

// fieldStart matches a tagged field line such as ":61:..." or ":28C:...".
var fieldStart = regexp.MustCompile(`^:(\d{2}[A-Z]?):(.*)$`)

// statementLine is the :61: subfield layout:
// value date, entry date, mark, funds code, amount, type code, customer ref, //bank ref.
var statementLine = regexp.MustCompile(`^(\d{6})(\d{4})?(RC|RD|C|D)([A-Z])?(\d[\d,]*)([NSF][A-Z0-9]{3})(.*?)(?://(.*))?$`)

const (
	slValueDate = 1
	slMark      = 3
	slAmount    = 5
	slCustRef   = 7
	slBankRef   = 8
)

// SwiftParser reads :61: lines by their SWIFT subfields and takes the
// description from the following :86: field. Lines that do not fit the
// grammar fall back to fixed-offset extraction.
type SwiftParser struct{}

// Name returns the parser name.
func (p *SwiftParser) Name() string { return "swift" }

type field struct {
	tag   string
	lines []string
}

// Parse returns one transaction per :61: field of raw, in input order.
func (p *SwiftParser) Parse(raw string) model.Batch {
	fields := splitFields(raw)

	batch := model.Batch{}
	for i, f := range fields {
		if f.tag != "61" {
			continue
		}
		info := ""
		if i+1 < len(fields) && fields[i+1].tag == "86" {
			info = joinLines(fields[i+1].lines)
		}
		batch = append(batch, parseStatementField(f, info))
	}
	return batch
}

// splitFields groups raw lines into tagged fields. Untagged lines continue
// the previous field; block delimiters and text before the first tag are dropped.
func splitFields(raw string) []field {
	var fields []field
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := fieldStart.FindStringSubmatch(line); m != nil {
			fields = append(fields, field{tag: m[1], lines: []string{m[2]}})
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "-" || trimmed == "-}" || len(fields) == 0 {
			continue
		}
		last := &fields[len(fields)-1]
		last.lines = append(last.lines, line)
	}
	return fields
}

func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " ")
}

func parseStatementField(f field, info string) model.Transaction {
	m := statementLine.FindStringSubmatch(f.lines[0])
	if m == nil {
		return parseFixedLine(statementLineTag + f.lines[0])
	}

	amount := parseSwiftAmount(m[slAmount])
	if amount.Valid && (m[slMark] == "D" || m[slMark] == "RC") {
		amount.Decimal = amount.Decimal.Neg()
	}

	desc := info
	if desc == "" && len(f.lines) > 1 {
		desc = joinLines(f.lines[1:])
	}
	if desc == "" {
		desc = strings.TrimSpace(m[slBankRef])
	}
	if desc == "" {
		desc = strings.TrimSpace(m[slCustRef])
	}

	return model.Transaction{
		Date:        m[slValueDate],
		Amount:      amount,
		Description: desc,
	}
}

// parseSwiftAmount parses an amount that uses a comma as decimal separator.
func parseSwiftAmount(s string) decimal.NullDecimal {
	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
