package plan

// Feedback is the athlete's end-of-week verdict on the elapsed week.
type Feedback string

const (
	FeedbackTooEasy Feedback = "too-easy"
	FeedbackTooHard Feedback = "too-hard"
	FeedbackKeep    Feedback = "keep"
)

// Valid reports whether the feedback value is one of the three inputs.
func (f Feedback) Valid() bool {
	return f == FeedbackTooEasy || f == FeedbackTooHard || f == FeedbackKeep
}

// AdaptationResult is the outcome of one feedback transition.
type AdaptationResult struct {
	Profile  AthleteProfile `json:"profile"`
	Message  string         `json:"message"`
	OpenWeek int            `json:"open_week"` // 0 when the plan is finished
}

// ApplyFeedback runs one adaptive-difficulty transition. "too-easy" speeds
// paces up by lowering the difficulty factor one step (floored at 0.8);
// "too-hard" slows them down one step with no upper cap; "keep" changes
// nothing. The returned profile's factor feeds every subsequent pace
// computation; already-rendered weeks are not touched retroactively.
func ApplyFeedback(profile AthleteProfile, fb Feedback, p Plan, st CompletionState) AdaptationResult {
	next := profile
	var msg string

	switch fb {
	case FeedbackTooEasy:
		next.DifficultyFactor -= DifficultyStep
		if next.DifficultyFactor < DifficultyFloor {
			next.DifficultyFactor = DifficultyFloor
		}
		msg = "Allures accélérées pour les prochaines semaines."
	case FeedbackTooHard:
		next.DifficultyFactor += DifficultyStep
		msg = "Allures ralenties pour les prochaines semaines."
	default:
		msg = "Allures maintenues."
	}

	return AdaptationResult{
		Profile:  next,
		Message:  msg,
		OpenWeek: NextOpenWeek(p, st),
	}
}
