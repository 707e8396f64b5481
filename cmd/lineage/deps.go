package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/ersonp/lineage/internal/application/handlers"
	"github.com/ersonp/lineage/internal/domain/ports"
	"github.com/ersonp/lineage/internal/domain/services"
	"github.com/ersonp/lineage/internal/infrastructure/config"
	"github.com/ersonp/lineage/internal/infrastructure/logger"
	"github.com/ersonp/lineage/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/lineage/internal/infrastructure/render"
	"github.com/ersonp/lineage/internal/infrastructure/storage/jsonfile"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	Log           *logger.Logger
	BasePath      string
	DocumentKey   string
	Family        *handlers.FamilyHandler
	Members       *handlers.MemberHandler
	Relationships *handlers.RelationshipHandler
	Tree          *handlers.TreeHandler
	Export        *handlers.ExportHandler
	Import        *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store   ports.DocumentStore
	cleanup func()

	// exports tracks background image exports started from the shell.
	exports sync.WaitGroup
	pending atomic.Int64
}

// goExport runs wait in the background and keeps the session open until
// it returns.
func (d *internalDeps) goExport(wait func()) {
	d.pending.Add(1)
	d.exports.Go(func() {
		defer d.pending.Add(-1)
		wait()
	})
}

// waitExports blocks until every background export has finished.
func (d *internalDeps) waitExports(w io.Writer) {
	if n := d.pending.Load(); n > 0 {
		fmt.Fprintf(w, "Waiting for %d background export(s)...\n", n)
	}
	d.exports.Wait()
}

// session holds the dependencies shared by every command run from the
// interactive shell. It is nil for one-shot commands.
var (
	sessionMu sync.Mutex
	session   *internalDeps
)

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including the store.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	if shared := currentSession(); shared != nil {
		return fn(shared)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	d, err := buildDeps(ctx, cwd, globalTree)
	if err != nil {
		return err
	}
	defer d.cleanup()

	return fn(d)
}

// buildDeps wires config, logger, storage, services and handlers for the
// tree selected in basePath.
func buildDeps(ctx context.Context, basePath, tree string) (*internalDeps, error) {
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if globalLogLevel != "" {
		level = globalLogLevel
	}
	log, err := logger.New(cfg.Log.Mode, level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	trees, err := config.LoadTrees(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading trees: %w", err)
	}
	key, err := trees.ResolveKey(tree, cfg.Storage.Key)
	if err != nil {
		return nil, err
	}

	store, audit, err := openStore(ctx, cfg, basePath)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(render.Options{FontPath: cfg.Render.FontPath, Log: log})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	family := services.NewFamilyService(store, audit, log, key)
	if err := family.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("loading family tree: %w", err)
	}

	treeHandler := handlers.NewTreeHandler(family, handlers.TreeSettingsFromConfig(cfg.Render))
	exportService := services.NewExportService(renderer, log)

	return &internalDeps{
		Deps: Deps{
			Config:        cfg,
			Log:           log,
			BasePath:      basePath,
			DocumentKey:   key,
			Family:        handlers.NewFamilyHandler(family),
			Members:       handlers.NewMemberHandler(family),
			Relationships: handlers.NewRelationshipHandler(family),
			Tree:          treeHandler,
			Export:        handlers.NewExportHandler(family, exportService, treeHandler),
			Import:        handlers.NewImportHandler(services.NewImportService(family)),
		},
		store: store,
		cleanup: func() {
			store.Close()
			log.Sync()
		},
	}, nil
}

// openStore opens the configured backend. The SQLite backend also keeps
// the audit log; the JSON backend has none.
func openStore(ctx context.Context, cfg *config.Config, basePath string) (ports.DocumentStore, ports.AuditLog, error) {
	path := cfg.StoragePath(basePath)

	switch cfg.Storage.Backend {
	case config.BackendJSON:
		store, err := jsonfile.NewStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating json store: %w", err)
		}
		return store, nil, nil
	default:
		repo, err := sqlite.NewRepository(path)
		if err != nil {
			return nil, nil, fmt.Errorf("creating sqlite repository: %w", err)
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("ensuring sqlite schema: %w", err)
		}
		return repo, repo, nil
	}
}

// withStore opens only the storage backend, for commands that manage
// documents rather than a loaded tree.
func withStore(ctx context.Context, basePath string, fn func(*config.Config, ports.DocumentStore) error) error {
	cfg, err := config.Load(basePath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	store, _, err := openStore(ctx, cfg, basePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}
