package enums

import "fmt"

// FeedbackType maps to the feedback_type enum in Postgres.
type FeedbackType string

const (
	FeedbackTypeCourse     FeedbackType = "course"
	FeedbackTypeModule     FeedbackType = "module"
	FeedbackTypeBugReport  FeedbackType = "bug_report"
	FeedbackTypeSuggestion FeedbackType = "suggestion"
)

var validFeedbackTypes = []FeedbackType{
	FeedbackTypeCourse,
	FeedbackTypeModule,
	FeedbackTypeBugReport,
	FeedbackTypeSuggestion,
}

// String implements fmt.Stringer.
func (f FeedbackType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FeedbackType.
func (f FeedbackType) IsValid() bool {
	for _, candidate := range validFeedbackTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// Ratable reports whether feedback of this type may carry a rating and
// contribute to a course average.
func (f FeedbackType) Ratable() bool {
	return f == FeedbackTypeCourse || f == FeedbackTypeModule
}

// ParseFeedbackType converts raw input into a FeedbackType.
func ParseFeedbackType(value string) (FeedbackType, error) {
	for _, candidate := range validFeedbackTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid feedback type %q", value)
}
