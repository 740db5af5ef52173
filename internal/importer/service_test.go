package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finvoice/internal/importer"
)

func TestParseBank(t *testing.T) {
	type testCase struct {
		in      string
		want    importer.Bank
		wantErr bool
	}

	tests := []testCase{
		{in: "cgd", want: importer.BankCGD},
		{in: " CGD ", want: importer.BankCGD},
		{in: "finvoice", want: importer.BankFinVoice},
		{in: "monzo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := importer.ParseBank(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	params, err := svc.Import(importer.BankCGD, strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;Grocer;-10,00\n"))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Grocer", params[0].Receiver)

	params, err = svc.Import(importer.BankFinVoice, strings.NewReader("date,type,amount,receiver\n2024-01-01,Income,5,Employer\n"))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Employer", params[0].Receiver)

	_, err = svc.Import("monzo", strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown bank")

	_, err = svc.Import(importer.BankCGD, strings.NewReader("no header here\n"))
	assert.ErrorContains(t, err, "parsing cgd statement")
}
