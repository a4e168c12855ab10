package playerstats

import (
	"time"

	sonic "github.com/bytedance/sonic"
)

// Input is caller-supplied record data keyed by canonical names or any alias.
type Input map[string]any

// Row is a record in the remote column naming.
type Row = map[string]any

// Record is the canonical player stats row.
type Record struct {
	ID                string    `json:"id"`
	PlayerName        string    `json:"player_name"`
	TotalScore        int       `json:"total_score"`
	Level1Score       int       `json:"level_1_score"`
	Level2Score       int       `json:"level_2_score"`
	Level3Score       int       `json:"level_3_score"`
	GamePlayed        int       `json:"game_played"`
	CorrectAnswers    int       `json:"correct_answers"`
	WrongAnswers      int       `json:"wrong_answers"`
	TotalQuestions    int       `json:"total_questions"`
	CorrectStreak     int       `json:"correct_streak"`
	AverageScore      float64   `json:"average_score"`
	Badges            string    `json:"badges"`
	VideoWatched      int       `json:"video_watched"`
	ExperimentsDone   int       `json:"experiments_done"`
	HypothesesWritten int       `json:"hypotheses_written"`
	MaterialsRead     string    `json:"materials_read"`
	InquiryPhasesRead string    `json:"inquiry_phases_read"`
	LevelAttempts     string    `json:"level_attempts"`
	CPTPRead          bool      `json:"cptp_read"`
	LastPlayed        time.Time `json:"last_played"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func recordFromCanonical(values map[string]any) Record {
	str := func(key string) string {
		v, _ := values[key].(string)
		return v
	}
	num := func(key string) int {
		v, _ := values[key].(int)
		return v
	}

	avg, _ := values["average_score"].(float64)
	cptp, _ := values["cptp_read"].(bool)

	return Record{
		ID:                str(ColumnID),
		PlayerName:        str("player_name"),
		TotalScore:        num("total_score"),
		Level1Score:       num("level_1_score"),
		Level2Score:       num("level_2_score"),
		Level3Score:       num("level_3_score"),
		GamePlayed:        num("game_played"),
		CorrectAnswers:    num("correct_answers"),
		WrongAnswers:      num("wrong_answers"),
		TotalQuestions:    num("total_questions"),
		CorrectStreak:     num("correct_streak"),
		AverageScore:      avg,
		Badges:            str("badges"),
		VideoWatched:      num("video_watched"),
		ExperimentsDone:   num("experiments_done"),
		HypothesesWritten: num("hypotheses_written"),
		MaterialsRead:     str("materials_read"),
		InquiryPhasesRead: str("inquiry_phases_read"),
		LevelAttempts:     str("level_attempts"),
		CPTPRead:          cptp,
		LastPlayed:        ParseTimestamp(str("last_played")),
		CreatedAt:         ParseTimestamp(str(ColumnCreatedAt)),
		UpdatedAt:         ParseTimestamp(str(ColumnUpdatedAt)),
	}
}

// View is a record as handed to callers: every column readable under its canonical name,
// each alias and, for the identity, __backendId.
type View struct {
	Record Record
	values map[string]any
}

// ID returns the server identity.
func (v View) ID() string {
	return v.Record.ID
}

// Get resolves a canonical name or alias. Timestamps are returned as their ISO-8601 text.
func (v View) Get(name string) (any, bool) {
	canonical, ok := CanonicalName(name)
	if !ok {
		return nil, false
	}
	value, ok := v.values[canonical]
	return value, ok
}

// Map returns the full fan-out, one key per canonical name and alias.
func (v View) Map() map[string]any {
	out := make(map[string]any, len(canonicalByName))
	for name, canonical := range canonicalByName {
		if value, ok := v.values[canonical]; ok {
			out[name] = value
		}
	}
	return out
}

func (v View) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(v.Map())
}
