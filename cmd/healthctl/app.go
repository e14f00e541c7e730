package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/vcscsvcscs/healthguide/internal/cache"
	"github.com/vcscsvcscs/healthguide/internal/chatbot"
	"github.com/vcscsvcscs/healthguide/internal/events"
	"github.com/vcscsvcscs/healthguide/internal/pdf"
	"github.com/vcscsvcscs/healthguide/internal/service"
	"github.com/vcscsvcscs/healthguide/internal/storage/sqlite"
	"github.com/vcscsvcscs/healthguide/pkg/model"
	"go.uber.org/zap"
)

// localUser owns every entry of the local database
const localUser = "00000000-0000-4000-8000-000000000001"

// App is the context handed to every command
type App struct {
	Tracker   *service.TrackerService
	Analytics *service.AnalyticsService
	Matcher   *chatbot.SymptomMatcher
	PDF       *pdf.PDFGenerator
	Out       io.Writer
	Log       *log.Logger

	store *sqlite.Store
}

func openApp(path string, out io.Writer, logger *log.Logger) (*App, error) {
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, err
	}

	// the services log through zap; the CLI reports through charmbracelet/log
	nop := zap.NewNop()

	matcher, err := chatbot.NewSymptomMatcher(nop)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load disease knowledge base: %w", err)
	}

	repo := localRepository{store: store}
	logger.Debug("database opened", "path", path)

	return &App{
		Tracker:   service.NewTrackerService(repo, repo, cache.NoopCache{}, events.NoopPublisher{}, nil, nop),
		Analytics: service.NewAnalyticsService(repo, cache.NoopCache{}, nop),
		Matcher:   matcher,
		PDF:       pdf.NewPDFGenerator(nop),
		Out:       out,
		Log:       logger,
		store:     store,
	}, nil
}

// Close closes the database
func (a *App) Close() error {
	return a.store.Close()
}

// localRepository serves the tracker repositories from the single-user store
type localRepository struct {
	store *sqlite.Store
}

var (
	_ service.EntryRepositoryInterface      = localRepository{}
	_ service.MedicationRepositoryInterface = localRepository{}
)

func (r localRepository) SaveEntry(ctx context.Context, _ string, entry *model.HealthEntry) error {
	return r.store.SaveEntry(ctx, entry)
}

func (r localRepository) GetEntry(ctx context.Context, _ string, date string) (*model.HealthEntry, error) {
	entry, err := r.store.GetEntry(ctx, date)
	return entry, notFound(err)
}

func (r localRepository) LoadEntries(ctx context.Context, _ string) (map[string]model.HealthEntry, error) {
	return r.store.LoadEntries(ctx)
}

func (r localRepository) ListPrescribed(ctx context.Context, _ string) ([]string, error) {
	return r.store.ListPrescribed(ctx)
}

func (r localRepository) AddPrescribed(ctx context.Context, _ string, name string) (bool, error) {
	return r.store.AddPrescribed(ctx, name)
}

func (r localRepository) RemovePrescribed(ctx context.Context, _ string, name string) error {
	return notFound(r.store.RemovePrescribed(ctx, name))
}

// notFound makes store misses recognisable to the services
func notFound(err error) error {
	if errors.Is(err, sqlite.ErrNotFound) {
		return fmt.Errorf("%w: %w", service.ErrNotFound, err)
	}
	return err
}
