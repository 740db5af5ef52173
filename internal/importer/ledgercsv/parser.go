// Package ledgercsv reads back the transactions CSV that FinVoice exports.
package ledgercsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/finvoice/internal/encoding"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

var required = []string{"date", "type", "amount", "receiver"}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse maps columns by header name, so extra columns such as id are ignored.
// Every data row must parse; a bad row fails the whole file.
func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, _, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var params []transaction.CreateParams

	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		tx, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		params = append(params, tx)
	}

	return params, nil
}

func parseRow(row []string, cols map[string]int) (transaction.CreateParams, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	date, err := transaction.ParseDate(cell("date"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	typ, err := transaction.ParseType(cell("type"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	amount, err := transaction.ParseAmount(cell("amount"))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	return transaction.CreateParams{
		Date:        date,
		Amount:      amount,
		Receiver:    cell("receiver"),
		Type:        typ,
		Description: cell("description"),
	}, nil
}
