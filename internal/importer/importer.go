package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Bank string

const (
	BankCGD Bank = "cgd"
	// BankFinVoice is the CSV written by the export package, for moving a
	// ledger between machines.
	BankFinVoice Bank = "finvoice"
)

// Banks lists every supported statement source.
func Banks() []Bank {
	return []Bank{BankCGD, BankFinVoice}
}

func ParseBank(s string) (Bank, error) {
	b := Bank(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Banks() {
		if b == known {
			return b, nil
		}
	}

	return "", fmt.Errorf("unknown bank: %q", s)
}

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
