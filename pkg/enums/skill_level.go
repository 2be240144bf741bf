package enums

import "fmt"

// SkillLevel maps to the skill_level enum in Postgres.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

var validSkillLevels = []SkillLevel{
	SkillLevelBeginner,
	SkillLevelIntermediate,
	SkillLevelAdvanced,
	SkillLevelExpert,
}

// String implements fmt.Stringer.
func (s SkillLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SkillLevel.
func (s SkillLevel) IsValid() bool {
	for _, candidate := range validSkillLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSkillLevel converts raw input into a SkillLevel.
func ParseSkillLevel(value string) (SkillLevel, error) {
	for _, candidate := range validSkillLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid skill level %q", value)
}
