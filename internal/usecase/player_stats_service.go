package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	"github.com/riskibarqy/playerstats/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultTableName  = "player_stats"
	PlaceholderURL    = "YOUR_SUPABASE_URL"
	PlaceholderAPIKey = "YOUR_SUPABASE_ANON_KEY"
	ModeSupabase      = "supabase"

	connectionOKMessage = "Connection successful"
)

// StoreConfig addresses one table of a Supabase project.
type StoreConfig struct {
	URL    string `validate:"required,ne=YOUR_SUPABASE_URL,url"`
	APIKey string `validate:"required,ne=YOUR_SUPABASE_ANON_KEY"`
	Table  string `validate:"required"`
}

// Configured reports whether both credentials are set to something other than a placeholder.
func (c StoreConfig) Configured() bool {
	url := strings.TrimSpace(c.URL)
	key := strings.TrimSpace(c.APIKey)
	return url != "" && url != PlaceholderURL && key != "" && key != PlaceholderAPIKey
}

// BackendFactory builds the REST transport for a configuration.
type BackendFactory func(cfg StoreConfig) playerstats.Backend

// DataHandler is told about the full record set after init and after every successful mutation.
type DataHandler interface {
	OnDataChanged(records []playerstats.View)
}

type DataHandlerFunc func(records []playerstats.View)

func (f DataHandlerFunc) OnDataChanged(records []playerstats.View) {
	f(records)
}

// StatsSnapshot is a best-effort status report. Error is set only when the read failed.
type StatsSnapshot struct {
	TotalPlayers int    `json:"totalPlayers"`
	IsOnline     bool   `json:"isOnline"`
	Mode         string `json:"mode"`
	TableName    string `json:"tableName,omitempty"`
	LastSync     string `json:"lastSync,omitempty"`
	Error        string `json:"error,omitempty"`
}

type ConnectionReport struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// PlayerStatsService persists player stats through a Supabase table.
// It moves from uninitialized to initialized once and never back.
type PlayerStatsService struct {
	newBackend BackendFactory
	validate   *validator.Validate
	logger     *logging.Logger
	now        func() time.Time

	mu          sync.RWMutex
	cfg         StoreConfig
	backend     playerstats.Backend
	handler     DataHandler
	initialized bool
}

func NewPlayerStatsService(cfg StoreConfig, newBackend BackendFactory, logger *logging.Logger) *PlayerStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerStatsService{
		newBackend: newBackend,
		validate:   validator.New(),
		logger:     logger,
		now:        time.Now,
		cfg:        normalizeStoreConfig(cfg),
	}
}

// Init validates the configuration, builds the backend and hydrates handler with the current
// records. A failed initial read is logged and does not fail initialization.
func (s *PlayerStatsService) Init(ctx context.Context, handler DataHandler) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Init")
	defer span.End()

	s.mu.Lock()
	cfg := s.cfg
	if err := s.validateConfig(ctx, cfg); err != nil {
		s.mu.Unlock()
		s.logger.WarnContext(ctx, "player stats store configuration rejected", "error", err)
		return err
	}
	s.backend = s.newBackend(cfg)
	s.handler = handler
	s.initialized = true
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "player stats store initialized", "table", cfg.Table)

	records, err := s.Read(ctx, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "initial player stats read failed", "table", cfg.Table, "error", err)
		return nil
	}
	if handler != nil {
		s.notify(ctx, handler, records)
	}
	return nil
}

// SetConfig replaces the configuration and rebuilds the backend. The initialization state is kept.
func (s *PlayerStatsService) SetConfig(url, apiKey, table string) {
	cfg := normalizeStoreConfig(StoreConfig{URL: url, APIKey: apiKey, Table: table})

	s.mu.Lock()
	s.cfg = cfg
	s.backend = s.newBackend(cfg)
	s.mu.Unlock()

	s.logger.Info("player stats store configuration updated", "table", cfg.Table, "configured", cfg.Configured())
}

func (s *PlayerStatsService) Config() StoreConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *PlayerStatsService) Create(ctx context.Context, input playerstats.Input) (playerstats.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Create")
	defer span.End()

	backend, cfg, err := s.ready()
	if err != nil {
		return playerstats.Record{}, err
	}

	row := playerstats.NormalizeCreate(input, s.now())
	s.logger.DebugContext(ctx, "create player stats payload", "table", cfg.Table, "row", row)

	created, err := backend.Post(ctx, cfg.Table, row)
	if err != nil {
		return playerstats.Record{}, spanError(span, fmt.Errorf("create player stats: %w", err))
	}
	if created == nil {
		created = row
	}

	record := playerstats.ToRecord(created)
	span.SetAttributes(attribute.String("player_stats.id", record.ID))
	s.logger.DebugContext(ctx, "player stats created", "id", record.ID)

	s.refresh(ctx)
	return record, nil
}

// Read returns every record matching filters. Filter keys may be canonical names or aliases.
func (s *PlayerStatsService) Read(ctx context.Context, filters map[string]any) ([]playerstats.View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Read")
	defer span.End()

	backend, cfg, err := s.ready()
	if err != nil {
		return nil, err
	}

	rows, err := backend.Get(ctx, cfg.Table, playerstats.CanonicalFilters(filters))
	if err != nil {
		return nil, spanError(span, fmt.Errorf("read player stats: %w", err))
	}

	out := make([]playerstats.View, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Project(row))
	}
	span.SetAttributes(attribute.Int("player_stats.count", len(out)))
	return out, nil
}

// Update sends only the fields input names, plus updated_at. An id that matches no row
// yields ErrRecordNotFound and no notification.
func (s *PlayerStatsService) Update(ctx context.Context, input playerstats.Input) (playerstats.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Update")
	defer span.End()

	backend, cfg, err := s.ready()
	if err != nil {
		return playerstats.Record{}, err
	}
	rowID, ok := playerstats.Identity(input)
	if !ok {
		return playerstats.Record{}, fmt.Errorf("%w: update needs %s or %s", ErrMissingIdentity, playerstats.BackendIDAlias, playerstats.ColumnID)
	}
	span.SetAttributes(attribute.String("player_stats.id", rowID))

	row := playerstats.NormalizeUpdate(input, s.now())
	s.logger.DebugContext(ctx, "update player stats payload", "table", cfg.Table, "id", rowID, "row", row)

	updated, err := backend.Patch(ctx, cfg.Table, rowID, row)
	if err != nil {
		return playerstats.Record{}, spanError(span, fmt.Errorf("update player stats id=%s: %w", rowID, err))
	}
	if updated == nil {
		return playerstats.Record{}, spanError(span, fmt.Errorf("%w: id=%s", ErrRecordNotFound, rowID))
	}
	s.logger.DebugContext(ctx, "player stats updated", "id", rowID)

	s.refresh(ctx)
	return playerstats.ToRecord(updated), nil
}

func (s *PlayerStatsService) Delete(ctx context.Context, input playerstats.Input) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.Delete")
	defer span.End()

	backend, cfg, err := s.ready()
	if err != nil {
		return err
	}
	rowID, ok := playerstats.Identity(input)
	if !ok {
		return fmt.Errorf("%w: delete needs %s or %s", ErrMissingIdentity, playerstats.BackendIDAlias, playerstats.ColumnID)
	}
	span.SetAttributes(attribute.String("player_stats.id", rowID))

	if err := backend.Delete(ctx, cfg.Table, rowID); err != nil {
		return spanError(span, fmt.Errorf("delete player stats id=%s: %w", rowID, err))
	}
	s.logger.DebugContext(ctx, "player stats deleted", "id", rowID)

	s.refresh(ctx)
	return nil
}

// GetStats never fails. A failed read is reported as offline with the error text.
func (s *PlayerStatsService) GetStats(ctx context.Context) StatsSnapshot {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetStats")
	defer span.End()

	records, err := s.Read(ctx, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "player stats status read failed", "error", err)
		return StatsSnapshot{
			TotalPlayers: 0,
			IsOnline:     false,
			Mode:         ModeSupabase,
			Error:        err.Error(),
		}
	}

	return StatsSnapshot{
		TotalPlayers: len(records),
		IsOnline:     true,
		Mode:         ModeSupabase,
		TableName:    s.Config().Table,
		LastSync:     playerstats.FormatTimestamp(s.now()),
	}
}

// TestConnection performs a bare read against the table. It works before Init once a
// configuration has been set.
func (s *PlayerStatsService) TestConnection(ctx context.Context) ConnectionReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.TestConnection")
	defer span.End()

	s.mu.RLock()
	backend := s.backend
	table := s.cfg.Table
	s.mu.RUnlock()

	report := ConnectionReport{Timestamp: playerstats.FormatTimestamp(s.now())}
	if backend == nil {
		report.Message = ErrNotInitialized.Error()
		return report
	}

	if _, err := backend.Get(ctx, table, nil); err != nil {
		s.logger.WarnContext(ctx, "supabase connection test failed", "table", table, "error", err)
		report.Message = err.Error()
		return report
	}

	report.Success = true
	report.Message = connectionOKMessage
	return report
}

func (s *PlayerStatsService) ready() (playerstats.Backend, StoreConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized || s.backend == nil {
		return nil, StoreConfig{}, ErrNotInitialized
	}
	return s.backend, s.cfg, nil
}

// refresh re-reads after a successful mutation. Its failures never fail the mutation.
func (s *PlayerStatsService) refresh(ctx context.Context) {
	s.mu.RLock()
	handler := s.handler
	s.mu.RUnlock()
	if handler == nil {
		return
	}

	records, err := s.Read(ctx, nil)
	if err != nil {
		s.logger.WarnContext(ctx, "refresh after mutation failed", "error", err)
		return
	}
	s.notify(ctx, handler, records)
}

func (s *PlayerStatsService) notify(ctx context.Context, handler DataHandler, records []playerstats.View) {
	var catcher panics.Catcher
	catcher.Try(func() {
		handler.OnDataChanged(records)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		s.logger.ErrorContext(ctx, "player stats data handler panicked", "error", recovered.AsError())
	}
}

func (s *PlayerStatsService) validateConfig(ctx context.Context, cfg StoreConfig) error {
	err := s.validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	fieldErr := validationErrs[0]
	switch fieldErr.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrConfig, strings.ToLower(fieldErr.Field()))
	case "ne":
		return fmt.Errorf("%w: %s is still the placeholder value", ErrConfig, strings.ToLower(fieldErr.Field()))
	case "url":
		return fmt.Errorf("%w: %s must be an absolute url", ErrConfig, strings.ToLower(fieldErr.Field()))
	default:
		return fmt.Errorf("%w: %s failed %s", ErrConfig, strings.ToLower(fieldErr.Field()), fieldErr.Tag())
	}
}

func normalizeStoreConfig(cfg StoreConfig) StoreConfig {
	cfg.URL = strings.TrimSpace(cfg.URL)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Table = strings.TrimSpace(cfg.Table)
	if cfg.Table == "" {
		cfg.Table = DefaultTableName
	}
	return cfg
}
