package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nishantpawar/institute-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestFeedbacksMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_feedbacks.sql")

	checks := []string{
		"CREATE TYPE feedback_type AS ENUM ('course', 'module', 'bug_report', 'suggestion')",
		"CREATE TABLE IF NOT EXISTS feedbacks",
		"CHECK (rating >= 1 AND rating <= 5)",
		"FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS feedbacks",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCoursesMigrationBoundsAvgRating(t *testing.T) {
	content := readMigration(t, "*_create_courses.sql")

	checks := []string{
		"avg_rating numeric(2,1) NOT NULL DEFAULT 0 CHECK (avg_rating >= 0 AND avg_rating <= 5)",
		"skill skill_level NOT NULL DEFAULT 'beginner'",
		"DROP TABLE IF EXISTS courses",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestNotificationsMigrationSnapshotsRecipients(t *testing.T) {
	content := readMigration(t, "*_create_notifications.sql")

	checks := []string{
		"recipients text[] NOT NULL DEFAULT ARRAY[]::text[]",
		"email_sent boolean NOT NULL DEFAULT false",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
