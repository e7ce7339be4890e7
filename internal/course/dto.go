package course

import "github.com/google/uuid"

type ReviewDTO struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewsResponse struct {
	CourseID      uuid.UUID `json:"course_id"`
	AverageRating float64   `json:"average_rating"`
	Count         int       `json:"count"`
	Reviews       []Review  `json:"reviews"`
}

type EnrollResponse struct {
	CourseID        uuid.UUID `json:"course_id"`
	AlreadyEnrolled bool      `json:"already_enrolled"`
}
