package model

// Status is the traffic-light verdict for one metric rate.
type Status int

const (
	// StatusPass means the rate reached the metric's pass threshold.
	StatusPass Status = iota
	// StatusWarn means the rate is below pass but above the warning threshold.
	StatusWarn
	// StatusFail means the rate is below the warning threshold.
	StatusFail
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the emoji used in reports for the status.
func (s Status) Symbol() string {
	switch s {
	case StatusPass:
		return "✅"
	case StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

// Grade is the verdict for an overall score.
type Grade int

const (
	// GradeExcellent is a score of 90 or more.
	GradeExcellent Grade = iota
	// GradeGood is a score of 80 or more.
	GradeGood
	// GradePass is a score of 70 or more.
	GradePass
	// GradeFail is any lower score.
	GradeFail
)

// GradeFor returns the grade of an overall score in [0, 100].
func GradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 80:
		return GradeGood
	case score >= 70:
		return GradePass
	default:
		return GradeFail
	}
}

// String returns the message key of the grade.
func (g Grade) String() string {
	switch g {
	case GradeExcellent:
		return "excellent"
	case GradeGood:
		return "good"
	case GradePass:
		return "pass"
	case GradeFail:
		return "fail"
	default:
		return "unknown"
	}
}
