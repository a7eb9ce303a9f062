package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

const ruleColumns = `id, user_id, pattern, category, is_regex, priority, is_active, created_at, updated_at`

// CreateRule creates a new category rule. A nil UserID creates a global rule.
func (s *SQLiteStorage) CreateRule(ctx context.Context, rule *model.CategoryRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO category_rules (user_id, pattern, category, is_regex, priority, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rule.UserID, rule.Pattern, rule.Category, rule.IsRegex, rule.Priority, rule.IsActive)
	if err != nil {
		return fmt.Errorf("failed to create category rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule ID: %w", err)
	}
	rule.ID = id
	return nil
}

// ActiveRules returns the user's active rules plus the active global rules,
// ordered by priority descending with pattern as the deterministic tie-break.
// This ordering is the categorization snapshot; one call per run.
func (s *SQLiteStorage) ActiveRules(ctx context.Context, userID int64) ([]model.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ruleColumns+`
		FROM category_rules
		WHERE is_active = 1 AND (user_id = ? OR user_id IS NULL)
		ORDER BY priority DESC, pattern ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRules(rows)
}

// ListRules returns all rules in a scope: a user's rules for a non-nil
// userID, the global rules otherwise. Inactive rules are included so rule
// history stays auditable.
func (s *SQLiteStorage) ListRules(ctx context.Context, userID *int64) ([]model.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	var err error
	if userID != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+ruleColumns+` FROM category_rules
			WHERE user_id = ?
			ORDER BY priority DESC, pattern ASC`, *userID)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+ruleColumns+` FROM category_rules
			WHERE user_id IS NULL
			ORDER BY priority DESC, pattern ASC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRules(rows)
}

// DeactivateRule logically deactivates a rule. Rules are never deleted, to
// preserve the audit history of categorization decisions.
func (s *SQLiteStorage) DeactivateRule(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE category_rules SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate rule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: rule %d", common.ErrNotFound, id)
	}
	return nil
}

// ImportRules bulk-inserts a rule set for a user inside one transaction.
// Used at provisioning time to seed the default rules. Returns the number of
// rules imported.
func (s *SQLiteStorage) ImportRules(ctx context.Context, userID int64, rules []model.CategoryRule) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO category_rules (user_id, pattern, category, is_regex, priority, is_active)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare rule insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i := range rules {
			rule := &rules[i]
			if err := validateRule(rule); err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx,
				userID, rule.Pattern, rule.Category, rule.IsRegex, rule.Priority, rule.IsActive); err != nil {
				return fmt.Errorf("failed to import rule %q: %w", rule.Pattern, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func validateRule(rule *model.CategoryRule) error {
	if rule == nil {
		return fmt.Errorf("rule must not be nil")
	}
	if strings.TrimSpace(rule.Pattern) == "" {
		return fmt.Errorf("rule pattern must not be empty")
	}
	if strings.TrimSpace(rule.Category) == "" {
		return fmt.Errorf("rule category must not be empty")
	}
	return nil
}

func scanRules(rows *sql.Rows) ([]model.CategoryRule, error) {
	var rules []model.CategoryRule
	for rows.Next() {
		var r model.CategoryRule
		var userID sql.NullInt64
		err := rows.Scan(&r.ID, &userID, &r.Pattern, &r.Category, &r.IsRegex,
			&r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if userID.Valid {
			id := userID.Int64
			r.UserID = &id
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}
	return rules, nil
}
