package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/noah-isme/reflective-room/internal/repository"
	"github.com/noah-isme/reflective-room/pkg/config"
	"github.com/noah-isme/reflective-room/pkg/database"
	"github.com/noah-isme/reflective-room/pkg/tabular"
)

// Store bundles the record store workbook with its repositories.
type Store struct {
	Book        tabular.Workbook
	Submissions *repository.SubmissionRepository
	Prompts     *repository.PromptRepository
	cfg         config.StoreConfig
	closers     []func() error
}

// NewStore wraps an already opened workbook.
func NewStore(book tabular.Workbook, cfg config.StoreConfig, observer repository.Observer) *Store {
	return &Store{
		Book:        book,
		Submissions: repository.NewSubmissionRepository(book, cfg.SubmissionsWorksheet, observer),
		Prompts:     repository.NewPromptRepository(book, cfg.PromptsWorksheet, observer),
		cfg:         cfg,
	}
}

// OpenStore opens the configured backend. Opening never requires the store to
// be reachable; connectivity problems surface on first use and in Ping.
func OpenStore(ctx context.Context, cfg *config.Config, observer repository.Observer, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Store.Backend {
	case config.StoreSheets:
		var opts []option.ClientOption
		if cfg.Store.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Store.CredentialsFile))
		}
		book, err := tabular.NewSheets(ctx, cfg.Store.SpreadsheetID, opts...)
		if err != nil {
			return nil, fmt.Errorf("open sheets store: %w", err)
		}
		logger.Info("record store opened", zap.String("backend", cfg.Store.Backend), zap.String("spreadsheet_id", cfg.Store.SpreadsheetID))
		return NewStore(book, cfg.Store, observer), nil
	case config.StorePostgres:
		db, err := database.OpenPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		store := NewStore(tabular.NewPostgres(db), cfg.Store, observer)
		store.closers = append(store.closers, db.Close)
		logger.Info("record store opened", zap.String("backend", cfg.Store.Backend), zap.String("database", cfg.Database.Name))
		return store, nil
	case config.StoreMemory, "":
		logger.Warn("using in-memory record store; submissions are lost on restart")
		return NewStore(tabular.NewMemory(), cfg.Store, observer), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Ping checks that the workbook can be listed.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Book.Worksheets(ctx)
	return err
}

// Migrate prepares the store: the Postgres schema, the canonical submission
// header and the prompts worksheet. It reports whether submissions were rewritten.
func (s *Store) Migrate(ctx context.Context) (bool, error) {
	if pg, ok := s.Book.(*tabular.Postgres); ok {
		if err := pg.EnsureSchema(ctx); err != nil {
			return false, fmt.Errorf("ensure postgres schema: %w", err)
		}
	}
	migrated, err := s.Submissions.Migrate(ctx)
	if err != nil {
		return false, fmt.Errorf("migrate submissions: %w", err)
	}
	if _, err := tabular.OpenOrCreate(ctx, s.Book, s.cfg.PromptsWorksheet); err != nil {
		return migrated, fmt.Errorf("ensure prompts worksheet: %w", err)
	}
	return migrated, nil
}

// Close releases backend resources.
func (s *Store) Close() error {
	var firstErr error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
