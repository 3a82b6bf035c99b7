package importer

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle is one amount column plus an optional type column.
	amountSingle amountMode = iota
	// amountSplit is a bank-mutation layout with separate in and out columns.
	amountSplit
)

// Profile describes the column layout of a spreadsheet the household keeps.
// Headers are matched case-insensitively.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	TypeCol    string
	CreditCol  string
	DebitCol   string

	// Optional columns; a blank name or a missing header leaves the field empty.
	CategoryCol string
	SubtitleCol string
	OwnerCol    string
	CurrencyCol string
	ReceiptCol  string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.CreditCol, p.DebitCol)
	}

	return cols
}

// profiles are tried in order; split layouts come first because their
// columns would otherwise never be checked.
var profiles = []Profile{
	{
		Name:        "mutasi",
		DateCol:     "tanggal",
		DescCol:     "keterangan",
		AmountMode:  amountSplit,
		CreditCol:   "masuk",
		DebitCol:    "keluar",
		CategoryCol: "kategori",
		SubtitleCol: "subjudul",
		OwnerCol:    "pemilik",
	},
	{
		Name:        "indonesia",
		DateCol:     "tanggal",
		DescCol:     "keterangan",
		AmountMode:  amountSingle,
		AmountCol:   "jumlah",
		TypeCol:     "jenis",
		CategoryCol: "kategori",
		SubtitleCol: "subjudul",
		OwnerCol:    "pemilik",
		CurrencyCol: "mata uang",
		ReceiptCol:  "bukti",
	},
	{
		Name:        "english",
		DateCol:     "date",
		DescCol:     "description",
		AmountMode:  amountSingle,
		AmountCol:   "amount",
		TypeCol:     "type",
		CategoryCol: "category",
		SubtitleCol: "subtitle",
		OwnerCol:    "owner",
		CurrencyCol: "currency",
		ReceiptCol:  "receipt",
	},
}

// typeAliases maps what people write in a type column to a transaction type.
var typeAliases = map[string]string{
	"income":      "income",
	"in":          "income",
	"masuk":       "income",
	"pemasukan":   "income",
	"+":           "income",
	"expense":     "expense",
	"out":         "expense",
	"keluar":      "expense",
	"pengeluaran": "expense",
	"-":           "expense",
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
