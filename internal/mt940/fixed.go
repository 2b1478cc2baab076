package mt940

import (
	"strings"

	"github.com/cleared-dev/mt940convert/internal/model"
)

const (
	// statementLineTag introduces one transaction entry.
	statementLineTag = ":61:"

	fixedDateOffset   = 4
	fixedDateLen      = 6
	fixedAmountOffset = 10
	fixedAmountLen    = 15
	fixedDescOffset   = 25
)

// FixedParser extracts transactions from :61: lines by fixed rune offsets.
// It ignores every other field and never fails.
type FixedParser struct{}

// Name returns the parser name.
func (p *FixedParser) Name() string { return "fixed" }

// Parse returns one transaction per :61: line of raw, in line order.
func (p *FixedParser) Parse(raw string) model.Batch {
	return Parse(raw)
}

// Parse is the fixed-offset parser used when no other parser is selected.
func Parse(raw string) model.Batch {
	batch := model.Batch{}
	for _, line := range strings.Split(raw, "\n") {
		if !strings.HasPrefix(line, statementLineTag) {
			continue
		}
		batch = append(batch, parseFixedLine(line))
	}
	return batch
}

func parseFixedLine(line string) model.Transaction {
	return model.Transaction{
		Date:        substr(line, fixedDateOffset, fixedDateLen),
		Amount:      parseAmount(substr(line, fixedAmountOffset, fixedAmountLen)),
		Description: strings.TrimSpace(substr(line, fixedDescOffset, -1)),
	}
}
