package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type RouterOptions struct {
	MetricsEnabled bool
}

func NewRouter(handler *Handler, logger logrus.FieldLogger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)
	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shifts", handler.ListShifts)
		r.Post("/shifts", handler.StartShift)
		r.Delete("/shifts/{id}", handler.DeleteShift)
		r.Post("/shifts/{id}/end-dialog", handler.OpenEndDialog)

		r.Post("/end-dialogs/{token}/preview", handler.PreviewEndDialog)
		r.Post("/end-dialogs/{token}/confirm", handler.ConfirmEndDialog)
		r.Delete("/end-dialogs/{token}", handler.CancelEndDialog)

		r.Get("/staff", handler.ListStaff)
	})

	return r
}
