package serialize

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/mt940convert/internal/model"
)

func sampleBatch() model.Batch {
	return model.Batch{
		{Date: "230101", Amount: decimal.NewNullDecimal(decimal.RequireFromString("1234.50")), Description: "Salary payment"},
		{Date: "230102", Amount: decimal.NewNullDecimal(decimal.RequireFromString("-45")), Description: "Groceries & more <store>"},
		{Date: "230103", Description: "SCNONREF//Unparsable amount"},
	}
}
