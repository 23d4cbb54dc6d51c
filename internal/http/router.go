package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/atelierhq/atelier/internal/http/employee"
	"github.com/atelierhq/atelier/internal/http/importcsv"
	"github.com/atelierhq/atelier/internal/http/invoice"
	"github.com/atelierhq/atelier/internal/http/middleware"
	"github.com/atelierhq/atelier/internal/http/project"
	"github.com/atelierhq/atelier/internal/http/task"
	"github.com/atelierhq/atelier/internal/http/transaction"
)

func New(
	jwtSecret string,
	projectsV1 *project.Handler,
	employeesV1 *employee.Handler,
	tasksV1 *task.Handler,
	invoicesV1 *invoice.Handler,
	transactionsV1 *transaction.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtSecret))

		r.Route("/projects", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			projectsV1.Routes(r)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			employeesV1.Routes(r)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			tasksV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
