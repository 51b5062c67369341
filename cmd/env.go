package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/bidsight/bidsight/internal/analyze"
	"github.com/bidsight/bidsight/internal/store"
	"github.com/bidsight/bidsight/pkg/anthropic"
)

// appEnv bundles the store and analyzer shared by the subcommands.
type appEnv struct {
	Store    store.Store
	Analyzer *analyze.Analyzer
}

func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}

	llm := anthropic.NewClient(cfg.Anthropic.Key, cfg.Anthropic.RequestsPerSecond)
	return &appEnv{
		Store:    st,
		Analyzer: analyze.New(llm, st, cfg.Anthropic.Model),
	}, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	switch cfg.Store.Driver {
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st = pg
	case "sqlite", "":
		sq, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		st = sq
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func (e *appEnv) Close() {
	_ = e.Store.Close()
}
