package course

import "gorm.io/gorm"

type CourseContainer struct {
	Repo    CourseRepository
	Service CourseService
	Handler *Handler
}

func NewCourseContainer(db *gorm.DB, enroller Enroller) *CourseContainer {
	repo := NewRepository(db)
	service := NewService(repo, enroller)

	return &CourseContainer{
		Repo:    repo,
		Service: service,
		Handler: NewHandler(service),
	}
}
