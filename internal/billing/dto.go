package billing

import "github.com/google/uuid"

type CheckoutDTO struct {
	CourseID *uuid.UUID `json:"course_id" validate:"required_without=Plan"`
	Plan     string     `json:"plan" validate:"omitempty,oneof=pro"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
