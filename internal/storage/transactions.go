package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

const transactionColumns = `id, statement_id, date, description, amount, direction,
	category, original_category, user_corrected, created_at`

// TransactionsByStatement returns a statement's transactions, most recent
// first, preserving insertion order for equal dates.
func (s *SQLiteStorage) TransactionsByStatement(ctx context.Context, statementID int64) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE statement_id = ?
		ORDER BY date DESC, id ASC`, statementID)
}

// TransactionsByUser returns a user's transactions across all statements,
// most recent first. A limit of 0 returns everything.
func (s *SQLiteStorage) TransactionsByUser(ctx context.Context, userID int64, limit int) ([]model.Transaction, error) {
	query := `
		SELECT t.id, t.statement_id, t.date, t.description, t.amount, t.direction,
			t.category, t.original_category, t.user_corrected, t.created_at
		FROM transactions t
		JOIN statements st ON st.id = t.statement_id
		WHERE st.user_id = ?
		ORDER BY t.date DESC, t.id ASC`
	if limit > 0 {
		return s.queryTransactions(ctx, query+` LIMIT ?`, userID, limit)
	}
	return s.queryTransactions(ctx, query, userID)
}

// TransactionsByDateRange returns a user's transactions inside [start, end].
func (s *SQLiteStorage) TransactionsByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT t.id, t.statement_id, t.date, t.description, t.amount, t.direction,
			t.category, t.original_category, t.user_corrected, t.created_at
		FROM transactions t
		JOIN statements st ON st.id = t.statement_id
		WHERE st.user_id = ? AND t.date >= ? AND t.date <= ?
		ORDER BY t.date DESC, t.id ASC`, userID, start, end)
}

// TransactionsByCategory returns a user's transactions in one category.
func (s *SQLiteStorage) TransactionsByCategory(ctx context.Context, userID int64, category string) ([]model.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT t.id, t.statement_id, t.date, t.description, t.amount, t.direction,
			t.category, t.original_category, t.user_corrected, t.created_at
		FROM transactions t
		JOIN statements st ON st.id = t.statement_id
		WHERE st.user_id = ? AND t.category = ?
		ORDER BY t.date DESC, t.id ASC`, userID, category)
}

// UpdateTransactionCategory records a manual category correction. The
// category assigned at extraction time is preserved in original_category.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, id int64, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("category must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET category = ?, user_corrected = 1
		WHERE id = ?`, category, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

func scanTransaction(rows *sql.Rows) (*model.Transaction, error) {
	var txn model.Transaction
	var amount, direction string
	err := rows.Scan(&txn.ID, &txn.StatementID, &txn.Date, &txn.Description,
		&amount, &direction, &txn.Category, &txn.OriginalCategory,
		&txn.UserCorrected, &txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	txn.Direction, err = model.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("transaction must not be nil")
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("transaction date must not be zero")
	}
	if strings.TrimSpace(txn.Description) == "" {
		return fmt.Errorf("transaction description must not be empty")
	}
	if txn.Amount.IsNegative() {
		return fmt.Errorf("transaction amount must not be negative")
	}
	if txn.Direction != model.DirectionDebit && txn.Direction != model.DirectionCredit {
		return fmt.Errorf("invalid transaction direction %q", txn.Direction)
	}
	if strings.TrimSpace(txn.Category) == "" {
		return fmt.Errorf("transaction category must not be empty")
	}
	return nil
}
