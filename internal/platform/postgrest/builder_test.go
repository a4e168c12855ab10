package postgrest

import "testing"

func TestSelectBuilder(t *testing.T) {
	path, err := Select("*").
		From("player_stats").
		Where(EqAll(map[string]any{"total_score": 10, "player_name": "Ada Lovelace"})...).
		ToPath()
	if err != nil {
		t.Fatalf("build select path: %v", err)
	}

	want := "/rest/v1/player_stats?select=*&player_name=eq.Ada+Lovelace&total_score=eq.10"
	if path != want {
		t.Fatalf("unexpected path:\nwant: %s\ngot:  %s", want, path)
	}
}

func TestSelectBuilder_NoFilters(t *testing.T) {
	path, err := Select("*").From("player_stats").ToPath()
	if err != nil {
		t.Fatalf("build select path: %v", err)
	}
	if path != "/rest/v1/player_stats?select=*" {
		t.Fatalf("unexpected path: %s", path)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	if _, err := Select().From("player_stats").ToPath(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, err := Select("*").ToPath(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestRowsBuilder(t *testing.T) {
	path, err := Rows("player_stats").Where(Eq("id", "42")).ToPath()
	if err != nil {
		t.Fatalf("build rows path: %v", err)
	}
	if path != "/rest/v1/player_stats?id=eq.42" {
		t.Fatalf("unexpected path: %s", path)
	}

	path, err = Rows("player_stats").Where(Eq("id", "42"), Eq("player_name", "Ada Lovelace")).ToPath()
	if err != nil {
		t.Fatalf("build rows path: %v", err)
	}
	if path != "/rest/v1/player_stats?id=eq.42&player_name=eq.Ada+Lovelace" {
		t.Fatalf("unexpected path: %s", path)
	}

	if _, err := Rows("player_stats").ToPath(); err == nil {
		t.Fatalf("expected error for unfiltered mutation")
	}
}

func TestTable(t *testing.T) {
	path, err := Table("player_stats")
	if err != nil {
		t.Fatalf("build table path: %v", err)
	}
	if path != "/rest/v1/player_stats" {
		t.Fatalf("unexpected path: %s", path)
	}
}
