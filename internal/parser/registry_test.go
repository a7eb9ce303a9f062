package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

func TestRegistry_ParserFor(t *testing.T) {
	r := NewRegistry()

	p, err := r.ParserFor(model.BankAxisCredit)
	require.NoError(t, err)
	assert.Equal(t, model.BankAxisCredit, p.BankType())

	p, err = r.ParserFor(model.BankAxisSavings)
	require.NoError(t, err)
	assert.Equal(t, model.BankAxisSavings, p.BankType())

	_, err = r.ParserFor("hdfc_current")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFormatUnsupported)
}

func TestRegistry_Detect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     model.BankType
		wantErr  error
	}{
		{
			name:     "savings from content",
			filename: "statement.txt",
			content:  "Axis Bank Savings Account Statement\nOPENING BALANCE",
			want:     model.BankAxisSavings,
		},
		{
			name:     "credit card from content",
			filename: "statement.txt",
			content:  "AXIS BANK Credit Card Statement",
			want:     model.BankAxisCredit,
		},
		{
			name:     "savings from filename",
			filename: "axis-savings-oct.txt",
			content:  "monthly statement",
			want:     model.BankAxisSavings,
		},
		{
			name:     "pdf falls back to filename indicators",
			filename: "axis-savings-oct.pdf",
			content:  "%PDF-1.7\n\x01\x9c\x03\xe2 compressed stream bytes",
			want:     model.BankAxisSavings,
		},
		{
			name:     "unknown issuer",
			filename: "statement.txt",
			content:  "SOME OTHER BANK",
			wantErr:  common.ErrFormatUnsupported,
		},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.filename)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := r.Detect(path)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_DetectUnreadable(t *testing.T) {
	_, err := NewRegistry().Detect(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, common.ErrDocumentUnreadable)
}
