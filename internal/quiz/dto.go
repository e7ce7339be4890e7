package quiz

import "github.com/google/uuid"

// Submission maps a question id to the answer ids the caller selected.
type Submission map[uuid.UUID][]uuid.UUID

type SubmitDTO struct {
	Answers Submission `json:"answers" validate:"required"`
}

type SubmitResponse struct {
	AttemptID       uuid.UUID `json:"attempt_id"`
	Score           int       `json:"score"`
	Passed          bool      `json:"passed"`
	PassingScore    int       `json:"passing_score"`
	EarnedPoints    int       `json:"earned_points"`
	TotalPoints     int       `json:"total_points"`
	CourseProgress  *int      `json:"course_progress,omitempty"`
	LessonCompleted bool      `json:"lesson_completed"`
}

// QuizView is the quiz as shown to someone taking it. Answer keys are never
// part of it.
type QuizView struct {
	ID           uuid.UUID      `json:"id"`
	LessonID     uuid.UUID      `json:"lesson_id"`
	Title        string         `json:"title"`
	PassingScore int            `json:"passing_score"`
	Questions    []QuestionView `json:"questions"`
}

type QuestionView struct {
	ID       uuid.UUID    `json:"id"`
	Prompt   string       `json:"prompt"`
	Points   int          `json:"points"`
	Position int          `json:"position"`
	Answers  []AnswerView `json:"answers"`
}

type AnswerView struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

func NewQuizView(q *Quiz) *QuizView {
	view := &QuizView{
		ID:           q.ID,
		LessonID:     q.LessonID,
		Title:        q.Title,
		PassingScore: q.PassingScore,
		Questions:    make([]QuestionView, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		qv := QuestionView{
			ID:       question.ID,
			Prompt:   question.Prompt,
			Points:   question.Points,
			Position: question.Position,
			Answers:  make([]AnswerView, 0, len(question.Answers)),
		}
		for _, a := range question.Answers {
			qv.Answers = append(qv.Answers, AnswerView{ID: a.ID, Text: a.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}
