package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

const statementColumns = `id, user_id, file_path, file_name, bank_type, statement_date,
	parsing_status, error_detail, total_debits, total_credits, transaction_count,
	created_at, updated_at`

// CreateStatement inserts a new statement envelope in the pending status.
func (s *SQLiteStorage) CreateStatement(ctx context.Context, stmt *model.Statement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if stmt == nil {
		return fmt.Errorf("statement must not be nil")
	}
	if stmt.FilePath == "" || stmt.FileName == "" {
		return fmt.Errorf("statement file path and name must not be empty")
	}
	if stmt.BankType == "" {
		return fmt.Errorf("statement bank type must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO statements (user_id, file_path, file_name, bank_type, statement_date, parsing_status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		stmt.UserID, stmt.FilePath, stmt.FileName, string(stmt.BankType),
		stmt.StatementDate, string(model.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to create statement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get statement ID: %w", err)
	}
	stmt.ID = id
	stmt.ParsingStatus = model.StatusPending
	stmt.TotalDebits = decimal.Zero
	stmt.TotalCredits = decimal.Zero
	return nil
}

// GetStatement retrieves a statement by ID.
func (s *SQLiteStorage) GetStatement(ctx context.Context, id int64) (*model.Statement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+statementColumns+` FROM statements WHERE id = ?`, id)
	stmt, err := scanStatement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: statement %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	return stmt, nil
}

// ListStatements returns a user's statements, newest first.
func (s *SQLiteStorage) ListStatements(ctx context.Context, userID int64) ([]model.Statement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+statementColumns+` FROM statements
		WHERE user_id = ?
		ORDER BY statement_date DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var statements []model.Statement
	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, *stmt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statements: %w", err)
	}
	return statements, nil
}

// MarkStatementProcessing moves a statement from pending to processing.
func (s *SQLiteStorage) MarkStatementProcessing(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.StatusProcessing, "")
}

// MarkStatementFailed moves a statement to the terminal failed status and
// records the underlying error detail.
func (s *SQLiteStorage) MarkStatementFailed(ctx context.Context, id int64, detail string) error {
	return s.setStatus(ctx, id, model.StatusFailed, detail)
}

func (s *SQLiteStorage) setStatus(ctx context.Context, id int64, status model.ParsingStatus, detail string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE statements SET parsing_status = ?, error_detail = ? WHERE id = ?`,
		string(status), detail, id)
	if err != nil {
		return fmt.Errorf("failed to update statement status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: statement %d", common.ErrNotFound, id)
	}
	return nil
}

// CompleteStatement records a statement's transactions, its summary totals
// and the completed status in one database transaction. The completed status
// is only ever visible once every transaction row is durably recorded; any
// failure rolls the whole write back and the statement is marked failed with
// the error detail.
func (s *SQLiteStorage) CompleteStatement(ctx context.Context, id int64, txns []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO transactions (statement_id, date, description, amount, direction, category, original_category)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare transaction insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		totalDebits := decimal.Zero
		totalCredits := decimal.Zero

		for i := range txns {
			txn := &txns[i]
			if err := validateTransaction(txn); err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx,
				id, txn.Date, txn.Description, txn.Amount.String(),
				string(txn.Direction), txn.Category, txn.Category); err != nil {
				return fmt.Errorf("failed to insert transaction: %w", err)
			}

			switch txn.Direction {
			case model.DirectionDebit:
				totalDebits = totalDebits.Add(txn.Amount)
			case model.DirectionCredit:
				totalCredits = totalCredits.Add(txn.Amount)
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE statements
			SET parsing_status = ?, error_detail = '', total_debits = ?, total_credits = ?, transaction_count = ?
			WHERE id = ?`,
			string(model.StatusCompleted), totalDebits.String(), totalCredits.String(), len(txns), id)
		if err != nil {
			return fmt.Errorf("failed to update statement summary: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: statement %d", common.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		// A partial write must never leave the statement looking complete.
		if markErr := s.MarkStatementFailed(ctx, id, err.Error()); markErr != nil {
			common.LogError(markErr, "failed to mark statement failed after rollback", common.Fields{
				"statement_id": id,
			})
		}
		return err
	}
	return nil
}

// DeleteStatement removes a statement; its transactions cascade with it.
func (s *SQLiteStorage) DeleteStatement(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM statements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: statement %d", common.ErrNotFound, id)
	}
	return nil
}

func scanStatement(row interface{ Scan(...any) error }) (*model.Statement, error) {
	var stmt model.Statement
	var bankType, status, debits, credits string
	err := row.Scan(&stmt.ID, &stmt.UserID, &stmt.FilePath, &stmt.FileName, &bankType,
		&stmt.StatementDate, &status, &stmt.ErrorDetail, &debits, &credits,
		&stmt.TransactionCount, &stmt.CreatedAt, &stmt.UpdatedAt)
	if err != nil {
		return nil, err
	}

	stmt.BankType = model.BankType(bankType)
	stmt.ParsingStatus, err = model.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	stmt.TotalDebits, err = decimal.NewFromString(debits)
	if err != nil {
		return nil, fmt.Errorf("corrupt total_debits %q: %w", debits, err)
	}
	stmt.TotalCredits, err = decimal.NewFromString(credits)
	if err != nil {
		return nil, fmt.Errorf("corrupt total_credits %q: %w", credits, err)
	}
	return &stmt, nil
}
