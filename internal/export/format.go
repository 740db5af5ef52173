package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/finvoice/internal/goal"
	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown export format %q", s)
}

// FileName is the file an export of this format is written to.
func (f Format) FileName() string {
	if f == FormatYAML {
		return "ledger.yaml"
	}

	return "transactions.csv"
}

func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}

	return "text/csv"
}

var csvHeader = []string{"date", "type", "amount", "receiver", "description", "id"}

// WriteCSV writes one row per transaction in the given order.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		row := []string{
			tx.Date.Format(time.DateOnly),
			string(tx.Type),
			csvAmount(tx.Amount),
			tx.Receiver,
			tx.Description,
			tx.ID,
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// csvAmount pads to two decimals and keeps any finer precision unrounded.
func csvAmount(d decimal.Decimal) string {
	places := max(int32(2), -d.Exponent())

	return d.StringFixed(places)
}

type document struct {
	Version      int        `yaml:"version"`
	ExportedAt   string     `yaml:"exported_at"`
	Profile      profileDoc `yaml:"profile"`
	Transactions []txDoc    `yaml:"transactions"`
	Goals        []goalDoc  `yaml:"goals"`
}

type profileDoc struct {
	Name     string `yaml:"name"`
	JoinDate string `yaml:"join_date"`
}

type txDoc struct {
	ID          string `yaml:"id"`
	Date        string `yaml:"date"`
	Type        string `yaml:"type"`
	Amount      string `yaml:"amount"`
	Receiver    string `yaml:"receiver"`
	Description string `yaml:"description"`
}

type goalDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Target      string `yaml:"target"`
	Saved       string `yaml:"saved"`
	CreatedDate string `yaml:"created_date"`
	Completed   bool   `yaml:"completed"`
}

// WriteYAML writes the whole ledger as one versioned document.
func WriteYAML(w io.Writer, state *ledger.State, exportedAt time.Time) error {
	doc := document{
		Version:    1,
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Profile: profileDoc{
			Name:     state.Profile.Name,
			JoinDate: state.Profile.JoinDate.Format(time.DateOnly),
		},
		Transactions: make([]txDoc, len(state.Transactions)),
		Goals:        make([]goalDoc, len(state.Goals)),
	}

	for i, tx := range state.Transactions {
		doc.Transactions[i] = txDoc{
			ID:          tx.ID,
			Date:        tx.Date.Format(time.DateOnly),
			Type:        string(tx.Type),
			Amount:      tx.Amount.StringFixed(2),
			Receiver:    tx.Receiver,
			Description: tx.Description,
		}
	}

	for i, g := range state.Goals {
		doc.Goals[i] = goalDoc{
			ID:          g.ID,
			Name:        g.Name,
			Target:      g.Target.StringFixed(2),
			Saved:       g.Saved.StringFixed(2),
			CreatedDate: g.CreatedDate.Format(time.DateOnly),
			Completed:   goal.Completed(g),
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	return enc.Close()
}
