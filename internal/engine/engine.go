// Package engine orchestrates the statement processing pipeline: text
// extraction, segmentation, transaction extraction, categorization and
// atomic persistence.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/paisatrail/paisatrail/internal/category"
	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/doctext"
	"github.com/paisatrail/paisatrail/internal/model"
	"github.com/paisatrail/paisatrail/internal/parser"
	"github.com/paisatrail/paisatrail/internal/service"
)

// Engine runs the statement-to-transaction pipeline. Each statement is
// processed in a single synchronous pass with no shared mutable state, so a
// host may run engines for different statements independently.
type Engine struct {
	storage   service.Storage
	extractor doctext.Extractor
	registry  *parser.Registry
}

// New creates a processing engine with the given collaborators.
func New(storage service.Storage, extractor doctext.Extractor, registry *parser.Registry) *Engine {
	return &Engine{
		storage:   storage,
		extractor: extractor,
		registry:  registry,
	}
}

// CreateStatement registers a document for processing. The bank type is
// detected from the document unless an explicit override is given; the
// statement date is derived from date patterns in the filename.
func (e *Engine) CreateStatement(ctx context.Context, userID int64, path string, override model.BankType) (*model.Statement, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	bankType := override
	if bankType == "" {
		bankType, err = e.registry.Detect(absPath)
		if err != nil {
			return nil, err
		}
	} else if _, err := e.registry.ParserFor(bankType); err != nil {
		return nil, err
	}

	stmt := &model.Statement{
		UserID:        userID,
		FilePath:      absPath,
		FileName:      filepath.Base(absPath),
		BankType:      bankType,
		StatementDate: statementDateFromName(filepath.Base(absPath), time.Now()),
	}
	if err := e.storage.CreateStatement(ctx, stmt); err != nil {
		return nil, err
	}

	common.LogInfo("registered statement", common.Fields{
		"statement_id": stmt.ID,
		"file":         stmt.FileName,
		"bank_type":    stmt.BankType,
	})
	return stmt, nil
}

// ProcessStatement runs the full pipeline for one registered statement:
// pending -> processing -> completed or failed. Per-line failures are
// absorbed by the parser; per-statement failures land the statement in the
// failed status with the error detail recorded, and are returned to the
// caller as ordinary errors rather than crashing the run. Zero extracted
// transactions is a valid completed outcome.
func (e *Engine) ProcessStatement(ctx context.Context, statementID int64) (*model.Statement, error) {
	stmt, err := e.storage.GetStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}

	if err := e.storage.MarkStatementProcessing(ctx, stmt.ID); err != nil {
		return nil, err
	}

	txns, err := e.extract(ctx, stmt)
	if err != nil {
		return e.fail(ctx, stmt.ID, err)
	}

	// One rule snapshot per run: rules added mid-run never retroactively
	// change earlier decisions.
	rules, err := e.storage.ActiveRules(ctx, stmt.UserID)
	if err != nil {
		return e.fail(ctx, stmt.ID, err)
	}
	categorizer := category.New(rules)
	for i := range txns {
		txns[i].Category = categorizer.Categorize(txns[i].Description)
		txns[i].OriginalCategory = txns[i].Category
	}

	if err := e.storage.CompleteStatement(ctx, stmt.ID, txns); err != nil {
		return e.reload(ctx, stmt.ID, err)
	}

	common.LogInfo("processed statement", common.Fields{
		"statement_id": stmt.ID,
		"file":         stmt.FileName,
		"transactions": len(txns),
	})

	return e.reload(ctx, stmt.ID, nil)
}

func (e *Engine) extract(ctx context.Context, stmt *model.Statement) ([]model.Transaction, error) {
	lines, err := e.extractor.Lines(ctx, stmt.FilePath)
	if err != nil {
		return nil, err
	}

	p, err := e.registry.ParserFor(stmt.BankType)
	if err != nil {
		return nil, err
	}

	return parser.Parse(p, lines), nil
}

// fail marks the statement failed with the error detail and surfaces the
// original error alongside the refreshed statement.
func (e *Engine) fail(ctx context.Context, statementID int64, cause error) (*model.Statement, error) {
	if markErr := e.storage.MarkStatementFailed(ctx, statementID, cause.Error()); markErr != nil {
		common.LogError(markErr, "failed to record statement failure", common.Fields{
			"statement_id": statementID,
		})
	}
	return e.reload(ctx, statementID, cause)
}

func (e *Engine) reload(ctx context.Context, statementID int64, cause error) (*model.Statement, error) {
	stmt, err := e.storage.GetStatement(ctx, statementID)
	if err != nil {
		if cause != nil {
			return nil, errors.Join(cause, err)
		}
		return nil, err
	}
	return stmt, cause
}

// Filename date patterns, most specific first so a four-digit year is never
// misread as a two-digit one.
var filenameDatePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
	{regexp.MustCompile(`\d{2}-\d{2}-\d{4}`), "02-01-2006"},
	{regexp.MustCompile(`\d{2}-\d{2}-\d{2}`), "02-01-06"},
}

// statementDateFromName extracts a statement date from common filename date
// patterns; the fallback is used when no pattern matches.
func statementDateFromName(name string, fallback time.Time) time.Time {
	for _, p := range filenameDatePatterns {
		if m := p.re.FindString(name); m != "" {
			if t, err := time.Parse(p.layout, m); err == nil {
				return t
			}
		}
	}
	return fallback
}
