package assessment

// Performance messages
const (
	MsgNoAttempts = "No attempts recorded yet. Try taking the quiz to track your progress."
	MsgNeedReview = "Your latest score is below 60%. Focus on reviewing the course material before trying again."
	MsgStrong     = "Great job! You're showing strong understanding of this material."
	MsgProgress   = "You're making progress. Continue reviewing the challenging topics to improve your score."
)

const (
	reviewThreshold = 60.0
	strongThreshold = 80.0
)

// Analysis summarizes a user's recent attempts on a material.
type Analysis struct {
	AverageScore      float64   `json:"average_score"`
	HighestScore      float64   `json:"highest_score"`
	LowestScore       float64   `json:"lowest_score"`
	ImprovementNeeded bool      `json:"improvement_needed"`
	Message           string    `json:"message"`
	Attempts          []Attempt `json:"last_attempts"`
}

// Analyze derives the performance feedback of attempts, which must be ordered newest first.
// The message and ImprovementNeeded depend on the latest attempt only.
func Analyze(attempts []Attempt) Analysis {
	if len(attempts) == 0 {
		return Analysis{
			ImprovementNeeded: true,
			Message:           MsgNoAttempts,
			Attempts:          []Attempt{},
		}
	}

	an := Analysis{
		HighestScore: attempts[0].Score,
		LowestScore:  attempts[0].Score,
		Attempts:     attempts,
	}
	var total float64
	for _, att := range attempts {
		total += att.Score
		if att.Score > an.HighestScore {
			an.HighestScore = att.Score
		}
		if att.Score < an.LowestScore {
			an.LowestScore = att.Score
		}
	}
	an.AverageScore = total / float64(len(attempts))

	switch latest := attempts[0].Score; {
	case latest < reviewThreshold:
		an.ImprovementNeeded = true
		an.Message = MsgNeedReview
	case latest >= strongThreshold:
		an.Message = MsgStrong
	default:
		an.Message = MsgProgress
	}
	return an
}
