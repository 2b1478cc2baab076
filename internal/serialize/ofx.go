package serialize

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/cleared-dev/mt940convert/internal/model"
)

// TrnTypeChecking is written as TRNTYPE for every entry.
const TrnTypeChecking = "CHECKING"

const ofxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n" +
	`<?OFX OFXHEADER="200" VERSION="220" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>` + "\n"

type ofxDocument struct {
	XMLName xml.Name    `xml:"OFX"`
	Bank    ofxBankMsgs `xml:"BANKMSGSRSV1"`
}

type ofxBankMsgs struct {
	StmtTrnRs ofxStmtTrnRs `xml:"STMTTRNRS"`
}

type ofxStmtTrnRs struct {
	TrnUID string    `xml:"TRNUID"`
	Status ofxStatus `xml:"STATUS"`
	StmtRs ofxStmtRs `xml:"STMTRS"`
}

type ofxStatus struct {
	Code     int    `xml:"CODE"`
	Severity string `xml:"SEVERITY"`
}

type ofxStmtRs struct {
	TranList ofxTranList `xml:"BANKTRANLIST"`
}

type ofxTranList struct {
	Transactions []ofxTransaction `xml:"STMTTRN"`
}

type ofxTransaction struct {
	TrnType  string `xml:"TRNTYPE"`
	DtPosted string `xml:"DTPOSTED"`
	TrnAmt   string `xml:"TRNAMT"`
	FITID    string `xml:"FITID"`
	Name     string `xml:"NAME"`
}

// OFX renders batch as an OFX 2 document with one STMTTRN per transaction
// inside BANKTRANLIST. Dates and amounts are copied verbatim; FITID is the
// 1-based position of the entry.
func OFX(batch model.Batch) ([]byte, error) {
	doc := ofxDocument{}
	doc.Bank.StmtTrnRs = ofxStmtTrnRs{
		TrnUID: "0",
		Status: ofxStatus{Code: 0, Severity: "INFO"},
	}

	list := make([]ofxTransaction, 0, len(batch))
	for i, txn := range batch {
		list = append(list, ofxTransaction{
			TrnType:  TrnTypeChecking,
			DtPosted: txn.Date,
			TrnAmt:   txn.AmountString(),
			FITID:    strconv.Itoa(i + 1),
			Name:     txn.Description,
		})
	}
	doc.Bank.StmtTrnRs.StmtRs.TranList.Transactions = list

	var buf bytes.Buffer
	buf.WriteString(ofxHeader)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding OFX: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
