package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/paisatrail/paisatrail/internal/config"
	"github.com/paisatrail/paisatrail/internal/doctext"
	"github.com/paisatrail/paisatrail/internal/engine"
	"github.com/paisatrail/paisatrail/internal/model"
	"github.com/paisatrail/paisatrail/internal/parser"
	"github.com/paisatrail/paisatrail/internal/service"
	"github.com/paisatrail/paisatrail/internal/storage"
)

// initStorage opens the sqlite database and runs pending migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newEngine assembles the processing pipeline on top of an open store.
func newEngine(store service.Storage) *engine.Engine {
	return engine.New(store, doctext.NewFileExtractor(), parser.NewRegistry())
}

// resolveUser accepts either a numeric user ID or a username.
func resolveUser(ctx context.Context, store service.Storage, ref string) (*model.User, error) {
	if ref == "" {
		return nil, fmt.Errorf("a user must be specified with --user")
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return store.GetUserByID(ctx, id)
	}
	return store.GetUserByUsername(ctx, ref)
}
