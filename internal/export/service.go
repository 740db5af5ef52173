package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finvoice/internal/ledger"
	"github.com/MrJamesThe3rd/finvoice/internal/transaction"
)

type Source interface {
	Snapshot() *ledger.State
}

// Service writes ledger exports to disk.
type Service struct {
	source Source
	now    func() time.Time
}

func NewService(source Source) *Service {
	return &Service{source: source, now: time.Now}
}

// Export writes the transactions matching filter into dir, which is created
// if missing. CSV holds only transactions; YAML also carries the profile and
// goals. It returns the written path.
func (s *Service) Export(filter transaction.Filter, format Format, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	state := s.source.Snapshot()
	state.Transactions = filter.Apply(state.Transactions)

	path := filepath.Join(dir, format.FileName())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = WriteCSV(f, state.Transactions)
	case FormatYAML:
		err = WriteYAML(f, state, s.now())
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}

	if err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}

// GenerateSummary renders one line per transaction for pasting into a
// message, e.g. "* 2024-01-02 | Grocer | -200.00 | No description".
func GenerateSummary(txs []*transaction.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Type == transaction.TypeIncome {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			tx.Date.Format(time.DateOnly), tx.Receiver, sign, tx.Amount.StringFixed(2), tx.Description)
	}

	return sb.String()
}
