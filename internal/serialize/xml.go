package serialize

import (
	"encoding/xml"
	"fmt"

	"github.com/cleared-dev/mt940convert/internal/model"
)

type xmlBatch struct {
	XMLName      xml.Name         `xml:"transactions"`
	Transactions []xmlTransaction `xml:"transaction"`
}

type xmlTransaction struct {
	Date        string `xml:"date"`
	Amount      string `xml:"amount"`
	Description string `xml:"description"`
}

// XML renders batch as <transactions> holding one <transaction> per entry,
// each with <date>, <amount> and <description> children in that order.
func XML(batch model.Batch) (string, error) {
	doc := xmlBatch{Transactions: make([]xmlTransaction, 0, len(batch))}
	for _, txn := range batch {
		doc.Transactions = append(doc.Transactions, xmlTransaction{
			Date:        txn.Date,
			Amount:      txn.AmountString(),
			Description: txn.Description,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}
	return xml.Header + string(out) + "\n", nil
}
