package domain

// Status is the categorical performance label derived from a score.
type Status string

// Possible status values. These strings are part of the results wire format.
const (
	StatusFail      Status = "fail"
	StatusGood      Status = "good"
	StatusBetter    Status = "better"
	StatusExcellent Status = "excellent"
)

// StatusRule maps a minimum score to a status.
type StatusRule struct {
	Status    Status
	Threshold int
	Copy      string
}

// statusRules is ordered by descending threshold; the first rule whose
// threshold is at or below the score wins.
var statusRules = []StatusRule{
	{Status: StatusExcellent, Threshold: 20, Copy: "Elite recall. You nailed the full target set."},
	{Status: StatusBetter, Threshold: 15, Copy: "Strong performance. Keep sharpening that focus."},
	{Status: StatusGood, Threshold: 10, Copy: "Solid baseline. Another run can push you higher."},
	{Status: StatusFail, Threshold: 0, Copy: "Warm up again and give it another go."},
}

// StatusRules returns a copy of the threshold table, highest threshold first.
func StatusRules() []StatusRule {
	rules := make([]StatusRule, len(statusRules))
	copy(rules, statusRules)
	return rules
}

// RuleForScore returns the rule that applies to score. Scores below every
// threshold fall back to the last (lowest) rule.
func RuleForScore(score int) StatusRule {
	for _, rule := range statusRules {
		if score >= rule.Threshold {
			return rule
		}
	}
	return statusRules[len(statusRules)-1]
}

// StatusForScore returns the status label for score.
func StatusForScore(score int) Status {
	return RuleForScore(score).Status
}

// Copy returns the user-facing description for the status.
func (s Status) Copy() string {
	for _, rule := range statusRules {
		if rule.Status == s {
			return rule.Copy
		}
	}
	return ""
}

// Valid reports whether s is one of the known status labels.
func (s Status) Valid() bool {
	switch s {
	case StatusFail, StatusGood, StatusBetter, StatusExcellent:
		return true
	default:
		return false
	}
}

// ParseStatus converts a raw label into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
