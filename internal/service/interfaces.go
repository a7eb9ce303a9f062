// Package service defines the interfaces between the processing pipeline and
// its collaborators.
package service

import (
	"context"
	"time"

	"github.com/paisatrail/paisatrail/internal/model"
)

// UserStore manages user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, username, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeactivateUser(ctx context.Context, id int64) error
}

// RuleStore manages category rules. ActiveRules is the rule-set provider the
// categorizer consumes: it returns the user's active rules plus the active
// global rules, pre-ordered by (priority descending, pattern ascending).
type RuleStore interface {
	CreateRule(ctx context.Context, rule *model.CategoryRule) error
	ActiveRules(ctx context.Context, userID int64) ([]model.CategoryRule, error)
	ListRules(ctx context.Context, userID *int64) ([]model.CategoryRule, error)
	DeactivateRule(ctx context.Context, id int64) error
	ImportRules(ctx context.Context, userID int64, rules []model.CategoryRule) (int, error)
}

// StatementStore persists statement envelopes and their transactions.
// CompleteStatement must record all transactions, the summary totals and the
// completed status atomically; a partial write leaves the statement failed.
type StatementStore interface {
	CreateStatement(ctx context.Context, stmt *model.Statement) error
	GetStatement(ctx context.Context, id int64) (*model.Statement, error)
	ListStatements(ctx context.Context, userID int64) ([]model.Statement, error)
	MarkStatementProcessing(ctx context.Context, id int64) error
	MarkStatementFailed(ctx context.Context, id int64, detail string) error
	CompleteStatement(ctx context.Context, id int64, txns []model.Transaction) error
	DeleteStatement(ctx context.Context, id int64) error
}

// TransactionStore queries and corrects persisted transactions.
type TransactionStore interface {
	TransactionsByStatement(ctx context.Context, statementID int64) ([]model.Transaction, error)
	TransactionsByUser(ctx context.Context, userID int64, limit int) ([]model.Transaction, error)
	TransactionsByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]model.Transaction, error)
	TransactionsByCategory(ctx context.Context, userID int64, category string) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, id int64, category string) error
}

// Storage is the full persistence surface the application depends on.
type Storage interface {
	UserStore
	RuleStore
	StatementStore
	TransactionStore

	Migrate(ctx context.Context) error
	Close() error
}
