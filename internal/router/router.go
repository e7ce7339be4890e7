package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/academy-lambda/internal/auth"
	"github.com/saulo-duarte/academy-lambda/internal/billing"
	"github.com/saulo-duarte/academy-lambda/internal/certificate"
	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/container"
	"github.com/saulo-duarte/academy-lambda/internal/course"
	"github.com/saulo-duarte/academy-lambda/internal/middlewares"
	"github.com/saulo-duarte/academy-lambda/internal/notification"
	"github.com/saulo-duarte/academy-lambda/internal/progress"
	"github.com/saulo-duarte/academy-lambda/internal/quiz"
	"github.com/saulo-duarte/academy-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler         *user.Handler
	CourseHandler       *course.Handler
	ProgressHandler     *progress.Handler
	QuizHandler         *quiz.Handler
	CertificateHandler  *certificate.Handler
	NotificationHandler *notification.Handler
	BillingHandler      *billing.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Mount("/webhooks", billing.WebhookRoutes(cfg.BillingHandler))
	r.Mount("/courses", course.Routes(cfg.CourseHandler))
	r.Mount("/certificates", certificate.Routes(cfg.CertificateHandler))
	r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
	r.Mount("/checkout", billing.CheckoutRoutes(cfg.BillingHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/lessons", progress.Routes(cfg.ProgressHandler))
		r.Mount("/notifications", notification.Routes(cfg.NotificationHandler))

		r.Get("/courses/{id}/progress", cfg.ProgressHandler.GetCourseProgress)
		r.Post("/courses/{id}/certificate", cfg.CertificateHandler.Issue)
	})

	return r
}

func NewFromContainer(c *container.Container) http.Handler {
	return New(RouterConfig{
		UserHandler:         c.UserContainer.Handler,
		CourseHandler:       c.CourseContainer.Handler,
		ProgressHandler:     c.ProgressContainer.Handler,
		QuizHandler:         c.QuizContainer.Handler,
		CertificateHandler:  c.CertificateContainer.Handler,
		NotificationHandler: c.NotificationContainer.Handler,
		BillingHandler:      c.BillingContainer.Handler,
	})
}
