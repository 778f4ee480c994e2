//go:build integration

package jobs

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Requires TEST_DATABASE_URL pointing at a writable scratch database.
func testDatabaseURL(t *testing.T) string {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return url
}

func TestIntegration_ReadPostgres(t *testing.T) {
	url := testDatabaseURL(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	const table = "jobinsight_it_postings"
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		typ := "text"
		if c == ColMinExperience || c == ColMaxExperience {
			typ = "double precision"
		}
		cols[i] = `"` + c + `" ` + typ
	}
	if _, err := conn.Exec(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := conn.Exec(ctx, "CREATE TABLE "+table+" ("+strings.Join(cols, ", ")+")"); err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { conn.Exec(context.Background(), "DROP TABLE IF EXISTS "+table) }) //nolint:errcheck

	_, err = conn.Exec(ctx, "INSERT INTO "+table+` ("Job Title", "Company", "Location", "Min_Experience", "Max_Experience", "Posted", "Skill_List", "Skill_Type_List")
		VALUES ('Data Engineer', 'Acme', 'Pune', 3, 5, '1 day ago', '[''Python'', ''SQL'']', '[''Programming'']')`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	s, err := LoadStore(ctx, SourceConfig{Kind: SourcePostgres, DatabaseURL: url, Table: table})
	if err != nil {
		t.Fatalf("LoadStore error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 posting, got %d", s.Len())
	}
	p := s.All()[0]
	if p.ExperienceBand != BandJunior {
		t.Errorf("band = %q, want %q", p.ExperienceBand, BandJunior)
	}
	if len(p.SkillList) != 2 || p.SkillList[0] != "Python" {
		t.Errorf("skill list = %v", p.SkillList)
	}
	t.Logf("loaded %d postings, fingerprint %s", s.Len(), s.Fingerprint())
}

func TestIntegration_ReadPostgres_BadURL(t *testing.T) {
	_, err := ReadPostgres(context.Background(), "", "")
	if err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}
