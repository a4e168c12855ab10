package app

import (
	"github.com/riskibarqy/playerstats/external/supabase"
	"github.com/riskibarqy/playerstats/internal/config"
	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	idgen "github.com/riskibarqy/playerstats/internal/platform/id"
	"github.com/riskibarqy/playerstats/internal/platform/logging"
	"github.com/riskibarqy/playerstats/internal/platform/resilience"
	"github.com/riskibarqy/playerstats/internal/usecase"
)

// NewStorageManager wires the Supabase client, the record service and the facade from cfg.
// Nothing touches the network until the manager is initialized.
func NewStorageManager(cfg config.Config, logger *logging.Logger) *usecase.StorageManager {
	if logger == nil {
		logger = logging.Default()
	}

	requestIDs := idgen.NewUUIDGenerator()
	breakerCfg := resilience.CircuitBreakerConfig{
		Enabled:          cfg.SupabaseCircuitEnabled,
		FailureThreshold: cfg.SupabaseCircuitFailureCount,
		OpenTimeout:      cfg.SupabaseCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.SupabaseCircuitHalfOpenMaxReq,
	}
	clientLogger := logger.Named("supabase")

	newBackend := func(store usecase.StoreConfig) playerstats.Backend {
		return supabase.NewClient(supabase.ClientConfig{
			BaseURL:        store.URL,
			APIKey:         store.APIKey,
			Timeout:        cfg.SupabaseTimeout,
			Logger:         clientLogger,
			CircuitBreaker: breakerCfg,
			RequestIDs:     requestIDs,
		})
	}

	service := usecase.NewPlayerStatsService(
		usecase.StoreConfig{
			URL:    cfg.SupabaseURL,
			APIKey: cfg.SupabaseAnonKey,
			Table:  cfg.SupabaseTable,
		},
		newBackend,
		logger.Named("usecase"),
	)

	return usecase.NewStorageManager(service)
}
