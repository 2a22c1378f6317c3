package assessment

import "math"

// ScoreSummary is the immutable result of a submitted session.
type ScoreSummary struct {
	Correct          int
	Incorrect        int
	AccuracyPercent  int
	TimeTakenSeconds int
	SpeedPerMinute   float64

	// TimedOut is true when the session was submitted by the countdown
	// reaching zero rather than by the learner.
	TimedOut bool
}

// Total returns the number of questions the summary covers.
func (s ScoreSummary) Total() int {
	return s.Correct + s.Incorrect
}

// score computes the summary for a session at the moment of submission.
func score(questions []Question, answers map[int]string, budget, remaining int) ScoreSummary {
	var sum ScoreSummary
	for i, q := range questions {
		if q.IsCorrect(answers[i]) {
			sum.Correct++
		} else {
			sum.Incorrect++
		}
	}

	if n := len(questions); n > 0 {
		sum.AccuracyPercent = int(math.Round(100 * float64(sum.Correct) / float64(n)))
	}

	sum.TimeTakenSeconds = budget - remaining
	if sum.TimeTakenSeconds > 0 {
		perMinute := float64(sum.Correct) / (float64(sum.TimeTakenSeconds) / 60)
		sum.SpeedPerMinute = math.Round(perMinute*100) / 100
	}

	return sum
}
