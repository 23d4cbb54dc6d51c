// Package importer parses CSV uploads of ledger entries into transaction
// create params. Expected columns: date, type, amount, category,
// description, matched by header name in any order.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/atelierhq/atelier/internal/encoding"
	"github.com/atelierhq/atelier/internal/transaction"
)

var requiredColumns = []string{"date", "type", "amount"}

var dateLayouts = []string{time.DateOnly, "02/01/2006", time.RFC3339}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var params []transaction.CreateParams

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		p, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, p)
	}

	return params, nil
}

type colIndex map[string]int

func mapHeader(header []string) (colIndex, error) {
	cols := make(colIndex, len(header))

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name != "" {
			cols[name] = i
		}
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}

	return cols, nil
}

func parseRow(cols colIndex, row []string) (transaction.CreateParams, error) {
	date, err := parseDate(cell(row, cols, "date"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	typ := transaction.Type(strings.ToLower(cell(row, cols, "type")))
	if typ != transaction.TypeIncome && typ != transaction.TypeExpense {
		return transaction.CreateParams{}, fmt.Errorf("%q: %w", typ, transaction.ErrInvalidType)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(cell(row, cols, "amount")))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("parse amount: %w", err)
	}

	if amount.IsNegative() {
		return transaction.CreateParams{}, fmt.Errorf("%s: %w", amount, transaction.ErrInvalidAmount)
	}

	return transaction.CreateParams{
		Type:        typ,
		Amount:      amount,
		Category:    cell(row, cols, "category"),
		Description: cell(row, cols, "description"),
		Date:        date,
	}, nil
}

func cell(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
