package engine

import (
	"context"

	"github.com/paisatrail/paisatrail/internal/category"
	"github.com/paisatrail/paisatrail/internal/common"
	"github.com/paisatrail/paisatrail/internal/model"
)

// ProvisionUser creates a user account and imports the default category
// rules for it, so categorization works before any custom rules exist.
func (e *Engine) ProvisionUser(ctx context.Context, username, email string) (*model.User, int, error) {
	user, err := e.storage.CreateUser(ctx, username, email)
	if err != nil {
		return nil, 0, err
	}

	defaults, err := category.DefaultRules()
	if err != nil {
		return nil, 0, err
	}

	imported, err := e.storage.ImportRules(ctx, user.ID, defaults)
	if err != nil {
		return nil, 0, err
	}

	common.LogInfo("provisioned user", common.Fields{
		"user_id":       user.ID,
		"username":      user.Username,
		"default_rules": imported,
	})
	return user, imported, nil
}
