package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Repo    QuizRepository
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, completer LessonCompleter) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(repo, completer)

	return &QuizContainer{
		Repo:    repo,
		Service: service,
		Handler: NewHandler(service),
	}
}
