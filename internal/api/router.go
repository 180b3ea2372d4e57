package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"codearena/internal/api/handler"
	"codearena/internal/app/service"
)

func NewRouter(
	runService *service.RunService,
	batchService *service.BatchService,
	problemService *service.ProblemService,
	contestService *service.ContestService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	// Long enough for a slow sequential batch; the sandbox call itself
	// carries no timeout of its own.
	r.Use(chiMiddleware.Timeout(10 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		runHandler := handler.NewRunHandler(runService)
		v1.Group(func(g chi.Router) {
			runHandler.RegisterRoutes(g)
		})

		batchHandler := handler.NewBatchHandler(batchService)
		v1.Group(func(g chi.Router) {
			batchHandler.RegisterRoutes(g)
		})

		problemHandler := handler.NewProblemHandler(problemService)
		v1.Route("/problems", problemHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(contestService)
		v1.Group(func(g chi.Router) {
			submissionHandler.RegisterRoutes(g)
		})
	})

	return r
}
