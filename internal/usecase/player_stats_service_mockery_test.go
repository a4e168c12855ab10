package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	"github.com/riskibarqy/playerstats/internal/platform/logging"
	playerstatsmock "github.com/riskibarqy/playerstats/internal/mocks/domain/playerstats"
	"github.com/stretchr/testify/mock"
)

func newServiceWithBackend(t *testing.T, backend playerstats.Backend) *PlayerStatsService {
	t.Helper()
	svc := NewPlayerStatsService(
		StoreConfig{URL: "https://abc.supabase.co", APIKey: testAPIKey},
		func(StoreConfig) playerstats.Backend { return backend },
		logging.NewNop(),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPlayerStatsService_UpdateSendsOnlyNamedFieldsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := playerstatsmock.NewBackend(t)
	svc := newServiceWithBackend(t, backend)

	backend.
		On("Get", mock.Anything, DefaultTableName, mock.Anything).
		Return([]playerstats.Row{}, nil).
		Once()
	backend.
		On("Patch", ctx, DefaultTableName, "17", mock.MatchedBy(func(row map[string]any) bool {
			if len(row) != 3 {
				return false
			}
			_, hasID := row["id"]
			_, hasCreated := row["created_at"]
			return !hasID && !hasCreated &&
				row["correct_answers"] == 4 &&
				row["player_name"] == "Ada" &&
				row["updated_at"] == playerstats.FormatTimestamp(fixedNow)
		})).
		Return(playerstats.Row{"id": int64(17), "player_name": "Ada", "correct_answers": int64(4)}, nil).
		Once()

	if err := svc.Init(ctx, nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	record, err := svc.Update(ctx, playerstats.Input{
		"id":             17,
		"correct_answer": 4,
		"playerName":     "Ada",
		"createdAt":      "2020-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if record.ID != "17" || record.CorrectAnswers != 4 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestPlayerStatsService_ReadTranslatesAliasFiltersUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := playerstatsmock.NewBackend(t)
	svc := newServiceWithBackend(t, backend)

	backend.
		On("Get", mock.Anything, DefaultTableName, map[string]any(nil)).
		Return([]playerstats.Row{}, nil).
		Once()
	backend.
		On("Get", ctx, DefaultTableName, map[string]any{"player_name": "Ada", "game_played": 3}).
		Return([]playerstats.Row{{"id": int64(5), "player_name": "Ada", "games_played": int64(3)}}, nil).
		Once()

	if err := svc.Init(ctx, nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	records, err := svc.Read(ctx, map[string]any{"playerName": "Ada", "gamesPlayed": 3})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].Record.GamePlayed != 3 {
		t.Fatalf("expected games_played fallback, got %+v", records[0].Record)
	}
}

func TestPlayerStatsService_CreateFailureSkipsRefreshUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := playerstatsmock.NewBackend(t)
	svc := newServiceWithBackend(t, backend)
	handler := &recordingHandler{}

	backend.
		On("Get", mock.Anything, DefaultTableName, mock.Anything).
		Return([]playerstats.Row{}, nil).
		Once()
	backend.
		On("Post", ctx, DefaultTableName, mock.AnythingOfType("map[string]interface {}")).
		Return(nil, errors.New("insert rejected")).
		Once()

	if err := svc.Init(ctx, handler); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := svc.Create(ctx, playerstats.Input{"player_name": "Ada"}); err == nil {
		t.Fatalf("expected create error")
	}
	if handler.count() != 1 {
		t.Fatalf("expected only the init notification, got %d", handler.count())
	}
}

func TestPlayerStatsService_DeleteByBackendIDUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := playerstatsmock.NewBackend(t)
	svc := newServiceWithBackend(t, backend)

	backend.
		On("Get", mock.Anything, DefaultTableName, mock.Anything).
		Return([]playerstats.Row{}, nil).
		Once()
	backend.
		On("Delete", ctx, DefaultTableName, "b-9").
		Return(nil).
		Once()

	if err := svc.Init(ctx, nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := svc.Delete(ctx, playerstats.Input{playerstats.BackendIDAlias: "b-9", "id": "ignored"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
