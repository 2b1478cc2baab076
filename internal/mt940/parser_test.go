package mt940

import (
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/mt940convert/internal/model"
)

func TestParse_SalaryLine(t *testing.T) {
	batch := Parse(":61:230101C000000001234NMSCNONREF//Salary payment")
	require.Len(t, batch, 1)

	txn := batch[0]
	assert.Equal(t, "230101", txn.Date)
	// Runes 10..24 are "C000000001234NM": no leading number.
	assert.False(t, txn.Amount.Valid)
	assert.Equal(t, model.NaN, txn.AmountString())
	assert.Equal(t, "SCNONREF//Salary payment", txn.Description)
}

func TestParse_NumericAmount(t *testing.T) {
	batch := Parse(":61:230215000000001234.50  Rent March  ")
	require.Len(t, batch, 1)

	assert.Equal(t, "230215", batch[0].Date)
	require.True(t, batch[0].Amount.Valid)
	assert.Equal(t, "1234.5", batch[0].Amount.Decimal.String())
	assert.Equal(t, "Rent March", batch[0].Description)
}

func TestParse_CountAndOrder(t *testing.T) {
	lines := []string{
		":20:REF",
		":61:230101000000000000001first",
		":25:ACCOUNT",
		":61:230102000000000000002second",
		":86:ignored",
		":61:230103000000000000003third",
		":62F:C230103EUR1,00",
	}
	batch := Parse(strings.Join(lines, "\n"))
	require.Len(t, batch, 3)

	assert.Equal(t, []string{"first", "second", "third"}, []string{
		batch[0].Description, batch[1].Description, batch[2].Description,
	})
	assert.Equal(t, "230102", batch[1].Date)
	assert.True(t, batch[2].Amount.Decimal.Equal(decimal.NewFromInt(3)))
}

func TestParse_NoStatementLines(t *testing.T) {
	batch := Parse(":20:REF\n:25:ACCOUNT\n:62F:C230103EUR1,00\n")
	assert.NotNil(t, batch)
	assert.Empty(t, batch)

	assert.Empty(t, Parse(""))
}

func TestParse_ShortLines(t *testing.T) {
	batch := Parse(":61:\n:61:2301\n:61:230101123")
	require.Len(t, batch, 3)

	assert.Equal(t, model.Transaction{}, batch[0])
	assert.Equal(t, "2301", batch[1].Date)
	assert.False(t, batch[1].Amount.Valid)

	assert.Equal(t, "230101", batch[2].Date)
	require.True(t, batch[2].Amount.Valid)
	assert.Equal(t, "123", batch[2].Amount.Decimal.String())
	assert.Equal(t, "", batch[2].Description)
}

func TestParse_CRLF(t *testing.T) {
	batch := Parse(":20:X\r\n:61:230101000000000000010Coffee\r\n")
	require.Len(t, batch, 1)
	assert.Equal(t, "Coffee", batch[0].Description)
}

func TestParse_PrefixMustStartLine(t *testing.T) {
	batch := Parse(" :61:230101000000000000010indented\nx:61:230101")
	assert.Empty(t, batch)
}

func TestParse_MultibyteDescription(t *testing.T) {
	batch := Parse(":61:230101000000000000010Café Müller")
	require.Len(t, batch, 1)
	assert.Equal(t, "Café Müller", batch[0].Description)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means NaN
	}{
		{"000000001234", "1234"},
		{"  42.5xyz", "42.5"},
		{"-7", "-7"},
		{"+3", "3"},
		{"12.", "12"},
		{".5", "0.5"},
		{"1e3", "1000"},
		{"1e", "1"},
		{"12,50", "12"},
		{"1.5e2", "150"},
		{"1e99999999", ""},
		{"-1e400", ""},
		{"0e99999999", "0"},
		{"1e-99999999", "0"},
		{"0e9999999999999", "0"},
		{"C0001", ""},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		got := parseAmount(tt.in)
		if tt.want == "" {
			assert.False(t, got.Valid, "parseAmount(%q) should be NaN", tt.in)
			continue
		}
		require.True(t, got.Valid, "parseAmount(%q) should be numeric", tt.in)
		assert.Equal(t, tt.want, got.Decimal.String(), "parseAmount(%q)", tt.in)
	}
}

func TestSubstr(t *testing.T) {
	assert.Equal(t, "bcd", substr("abcdef", 1, 3))
	assert.Equal(t, "ef", substr("abcdef", 4, 10))
	assert.Equal(t, "", substr("abc", 5, 1))
	assert.Equal(t, "cdef", substr("abcdef", 2, -1))
	assert.Equal(t, "é", substr("aéb", 1, 1))
}

func TestFixedParser_Statement(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement.sta")
	require.NoError(t, err)

	batch := (&FixedParser{}).Parse(string(data))
	require.Len(t, batch, 3)
	assert.Equal(t, "230101", batch[0].Date)
	assert.Equal(t, "230102", batch[1].Date)
	assert.Equal(t, "230103", batch[2].Date)
}
