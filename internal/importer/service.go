package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/finvoice/internal/importer/cgd"
	"github.com/MrJamesThe3rd/finvoice/internal/importer/ledgercsv"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Service struct {
	importers map[Bank]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Bank]Importer{
			BankCGD:      cgd.NewParser(),
			BankFinVoice: ledgercsv.NewParser(),
		},
	}
}

// Import parses a statement into params ready for validation. Rows are
// returned in file order.
func (s *Service) Import(bank Bank, r io.Reader) ([]transaction.CreateParams, error) {
	importer, ok := s.importers[bank]
	if !ok {
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	params, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s statement: %w", bank, err)
	}

	return params, nil
}
