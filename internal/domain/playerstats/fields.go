package playerstats

// Kind is the value type a column is coerced into.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

const (
	ColumnID        = "id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"

	// BackendIDAlias exposes the server identity to callers that treat it opaquely.
	BackendIDAlias = "__backendId"
)

// Field describes one canonical column and the alternate names callers may use for it.
// Aliases are listed in lookup precedence order, after the canonical name.
type Field struct {
	Name    string
	Aliases []string
	Kind    Kind
	// CreateDefault is written on create when no name resolves. Timestamps default to call time instead.
	CreateDefault any
	// CreateOnly columns are never sent on update.
	CreateOnly bool
}

// Names returns the canonical name followed by every alias.
func (f Field) Names() []string {
	out := make([]string, 0, len(f.Aliases)+1)
	out = append(out, f.Name)
	out = append(out, f.Aliases...)
	return out
}

var fields = []Field{
	{Name: "player_name", Aliases: []string{"playerName", "name"}, Kind: KindString, CreateDefault: "Unknown"},
	{Name: "total_score", Aliases: []string{"totalScore"}, Kind: KindInt},
	{Name: "level_1_score", Kind: KindInt},
	{Name: "level_2_score", Kind: KindInt},
	{Name: "level_3_score", Kind: KindInt},
	{Name: "game_played", Aliases: []string{"games_played", "gamesPlayed"}, Kind: KindInt},
	{Name: "correct_answers", Aliases: []string{"correct_answer", "correctAnswers"}, Kind: KindInt},
	{Name: "wrong_answers", Aliases: []string{"wrong_answer", "wrongAnswers"}, Kind: KindInt},
	{Name: "average_score", Aliases: []string{"averageScore"}, Kind: KindFloat},
	{Name: "badges", Kind: KindString},
	{Name: "video_watched", Kind: KindInt},
	{Name: "materials_read", Kind: KindString},
	{Name: "experiments_done", Kind: KindInt},
	{Name: "total_questions", Kind: KindInt},
	{Name: "correct_streak", Kind: KindInt},
	{Name: "inquiry_phases_read", Kind: KindString},
	{Name: "level_attempts", Kind: KindString},
	{Name: "cptp_read", Kind: KindBool},
	{Name: "hypotheses_written", Kind: KindInt},
	{Name: "last_played", Aliases: []string{"lastPlayed"}, Kind: KindTime},
	{Name: ColumnCreatedAt, Aliases: []string{"createdAt"}, Kind: KindTime, CreateOnly: true},
	{Name: ColumnUpdatedAt, Aliases: []string{"updatedAt"}, Kind: KindTime},
}

// identityNames is checked in this order when extracting a record identity.
var identityNames = []string{BackendIDAlias, ColumnID}

var canonicalByName = buildCanonicalIndex()

func buildCanonicalIndex() map[string]string {
	out := make(map[string]string, len(fields)*2+2)
	for _, f := range fields {
		for _, name := range f.Names() {
			out[name] = f.Name
		}
	}
	out[ColumnID] = ColumnID
	out[BackendIDAlias] = ColumnID
	return out
}

// Fields returns a copy of the column table.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// CanonicalName maps a canonical name or alias to its column. Unknown names are returned unchanged.
func CanonicalName(name string) (string, bool) {
	canonical, ok := canonicalByName[name]
	if !ok {
		return name, false
	}
	return canonical, true
}
