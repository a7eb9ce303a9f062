package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

// Registry holds the registered statement-layout parsers.
type Registry struct {
	parsers map[model.BankType]Parser
}

// NewRegistry creates a registry with all built-in parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[model.BankType]Parser)}
	r.Register(NewCreditCardParser())
	r.Register(NewSavingsParser())
	return r
}

// Register adds a parser variant to the registry.
func (r *Registry) Register(p Parser) {
	r.parsers[p.BankType()] = p
}

// ParserFor returns the parser registered for the given bank type.
func (r *Registry) ParserFor(bankType model.BankType) (Parser, error) {
	p, ok := r.parsers[bankType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrFormatUnsupported, bankType)
	}
	return p, nil
}

// BankTypes lists the registered bank types.
func (r *Registry) BankTypes() []model.BankType {
	types := make([]model.BankType, 0, len(r.parsers))
	for t := range r.parsers {
		types = append(types, t)
	}
	return types
}

// Detect determines the statement format from the document's filename and
// leading content. Reads the first 1KB raw; that is enough for the issuer and
// account-type indicators banks print in the header of plain-text statements.
// PDF bodies are compressed, so for PDFs only the filename indicators fire.
func (r *Registry) Detect(path string) (model.BankType, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", common.ErrDocumentUnreadable, path, err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, 1024)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %s: %v", common.ErrDocumentUnreadable, path, err)
	}

	content := strings.ToLower(string(header[:n]))
	name := strings.ToLower(filepath.Base(path))

	if strings.Contains(content, "axis") || strings.Contains(name, "axis") {
		if strings.Contains(content, "saving") || strings.Contains(name, "saving") {
			return model.BankAxisSavings, nil
		}
		// Axis statements default to the credit card layout.
		return model.BankAxisCredit, nil
	}

	return "", fmt.Errorf("%w: could not detect format of %s", common.ErrFormatUnsupported, filepath.Base(path))
}
