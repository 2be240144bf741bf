package enums

import "testing"

func TestFeedbackType(t *testing.T) {
	for _, value := range []string{"course", "module", "bug_report", "suggestion"} {
		parsed, err := ParseFeedbackType(value)
		if err != nil {
			t.Fatalf("expected %q to parse: %v", value, err)
		}
		if !parsed.IsValid() {
			t.Fatalf("parsed %q should be valid", value)
		}
	}

	if _, err := ParseFeedbackType("complaint"); err == nil {
		t.Fatal("expected unknown feedback type to fail")
	}

	if !FeedbackTypeCourse.Ratable() || !FeedbackTypeModule.Ratable() {
		t.Fatal("course and module feedback must be ratable")
	}
	if FeedbackTypeBugReport.Ratable() || FeedbackTypeSuggestion.Ratable() {
		t.Fatal("bug reports and suggestions must not be ratable")
	}
}

func TestSkillLevel(t *testing.T) {
	if _, err := ParseSkillLevel("beginner"); err != nil {
		t.Fatalf("expected beginner to parse: %v", err)
	}
	if SkillLevel("ninja").IsValid() {
		t.Fatal("unknown skill level should be invalid")
	}
}
