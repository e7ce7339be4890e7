package quiz

import (
	"math"

	"github.com/google/uuid"
)

type Result struct {
	Score        int
	Passed       bool
	EarnedPoints int
	TotalPoints  int
	Correct      map[uuid.UUID]bool
}

// Grade scores sub against the answer keys in q. A question earns its points
// only when the selected set equals the correct set exactly.
func Grade(q *Quiz, sub Submission) Result {
	res := Result{Correct: make(map[uuid.UUID]bool, len(q.Questions))}

	for _, question := range q.Questions {
		res.TotalPoints += question.Points

		ok := sameSet(correctAnswers(question), sub[question.ID])
		res.Correct[question.ID] = ok
		if ok {
			res.EarnedPoints += question.Points
		}
	}

	if res.TotalPoints <= 0 {
		return res
	}
	res.Score = int(math.Round(100 * float64(res.EarnedPoints) / float64(res.TotalPoints)))
	res.Passed = res.Score >= q.PassingScore
	return res
}

func correctAnswers(q Question) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{})
	for _, a := range q.Answers {
		if a.IsCorrect {
			set[a.ID] = struct{}{}
		}
	}
	return set
}

func sameSet(correct map[uuid.UUID]struct{}, selected []uuid.UUID) bool {
	picked := make(map[uuid.UUID]struct{}, len(selected))
	for _, id := range selected {
		picked[id] = struct{}{}
	}
	if len(picked) != len(correct) {
		return false
	}
	for id := range picked {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}
