// Package importer reads household spreadsheet exports into draft rows for
// bulk ingestion.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/dompet/internal/catalog"
	enc "github.com/MrJamesThe3rd/dompet/internal/encoding"
	"github.com/MrJamesThe3rd/dompet/internal/ingest"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

var ErrUnknownFormat = errors.New("no known column layout found: expected a header with date, description and amount columns")

var delimiters = []rune{';', ',', '\t'}

// Parsed is the output of one CSV file.
type Parsed struct {
	Profile string
	Charset enc.Charset
	Rows    []ingest.DraftRow
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes r to UTF-8, finds the header row and delimiter, and returns
// one draft row per data line. Cells are passed through as typed; validation
// is left to ingest.
func (p *Parser) Parse(r io.Reader) (*Parsed, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRecords(content, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return &Parsed{
			Profile: profile.Name,
			Charset: utf8r.Charset,
			Rows:    parseRows(profile, cols, rows[headerIdx+1:]),
		}, nil
	}

	return nil, ErrUnknownFormat
}

func readRecords(content []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalizeHeader(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) []ingest.DraftRow {
	var drafts []ingest.DraftRow

	for _, row := range rows {
		if blank(row) {
			continue
		}

		// Rows without a date are totals or notes under the table.
		date := cell(row, cols, p.DateCol)
		if date == "" {
			continue
		}

		d := ingest.DraftRow{
			Date:        date,
			Description: cell(row, cols, p.DescCol),
			Category:    cell(row, cols, p.CategoryCol),
			Subtitle:    cell(row, cols, p.SubtitleCol),
			Owner:       cell(row, cols, p.OwnerCol),
			Currency:    cell(row, cols, p.CurrencyCol),
			ReceiptRef:  cell(row, cols, p.ReceiptCol),
		}

		switch p.AmountMode {
		case amountSingle:
			d.Amount, d.Type = singleAmount(cell(row, cols, p.AmountCol), cell(row, cols, p.TypeCol))
		case amountSplit:
			d.Amount, d.Type = splitAmount(cell(row, cols, p.CreditCol), cell(row, cols, p.DebitCol))
		}

		d.Category, d.Type = resolveCategory(d.Category, d.Type)

		drafts = append(drafts, d)
	}

	return drafts
}

// singleAmount reads a signed amount. A leading minus marks an expense when
// the type column is empty.
func singleAmount(amount, typ string) (string, string) {
	typ = typeAliases[strings.ToLower(typ)]

	if rest, ok := strings.CutPrefix(amount, "-"); ok && typ == "" {
		return strings.TrimSpace(rest), string(transaction.TypeExpense)
	}

	return amount, typ
}

func splitAmount(credit, debit string) (string, string) {
	if debit != "" && debit != "0" && debit != "-" {
		return strings.TrimPrefix(debit, "-"), string(transaction.TypeExpense)
	}

	if credit != "" && credit != "0" && credit != "-" {
		return credit, string(transaction.TypeIncome)
	}

	return "", ""
}

// resolveCategory maps a typed code or label to a catalog code and fills in
// the type from the category when the sheet did not say. Unknown values are
// returned untouched so the validator can reject them.
func resolveCategory(category, typ string) (string, string) {
	if category == "" {
		return catalog.Fallback(transaction.Type(typ)), typ
	}

	e, ok := catalog.Match(category)
	if !ok {
		return category, typ
	}

	if typ == "" {
		typ = string(e.Kind)
	}

	return e.Code, typ
}

func cell(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
