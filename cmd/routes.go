package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) requireAuthWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.requireAuth(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	publicMiddleware := standardMiddleware.Append(app.optionalAuth)
	authMiddleware := standardMiddleware.Append(app.requireAuthWithRole(""))
	companyMiddleware := standardMiddleware.Append(app.requireAuthWithRole("company"))

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/refresh", standardMiddleware.ThenFunc(app.userHandler.Refresh))
	mux.Post("/user/logout", authMiddleware.ThenFunc(app.userHandler.Logout))
	mux.Get("/user/me", authMiddleware.ThenFunc(app.userHandler.GetMe))

	// Jobs. The listing is open; the saved and applied tabs reject anonymous
	// viewers inside the composer. Specific paths go before /jobs/:id.
	mux.Get("/jobs/search", publicMiddleware.ThenFunc(app.jobHandler.SearchJobs))
	mux.Post("/jobs/search", publicMiddleware.ThenFunc(app.jobHandler.SearchJobsPost))
	mux.Get("/jobs/company/:company_id", companyMiddleware.ThenFunc(app.jobHandler.GetPostingsByCompany))
	mux.Get("/jobs/:id", publicMiddleware.ThenFunc(app.jobHandler.GetJobByID))
	mux.Post("/jobs", companyMiddleware.ThenFunc(app.jobHandler.CreatePosting))
	mux.Put("/jobs/:id", companyMiddleware.ThenFunc(app.jobHandler.UpdatePosting))
	mux.Post("/jobs/:id/activate", companyMiddleware.ThenFunc(app.jobHandler.ActivatePosting))
	mux.Post("/jobs/:id/deactivate", companyMiddleware.ThenFunc(app.jobHandler.DeactivatePosting))

	// Favorites
	mux.Post("/favorites", authMiddleware.ThenFunc(app.jobFavoriteHandler.AddToFavorites))
	mux.Del("/favorites/user/:user_id/job/:job_id", authMiddleware.ThenFunc(app.jobFavoriteHandler.RemoveFromFavorites))
	mux.Get("/favorites/check/user/:user_id/job/:job_id", authMiddleware.ThenFunc(app.jobFavoriteHandler.IsFavorite))
	mux.Get("/favorites/:user_id", authMiddleware.ThenFunc(app.jobFavoriteHandler.GetFavoritesByUser))

	// Applications
	mux.Post("/applications", authMiddleware.ThenFunc(app.applicationHandler.Apply))
	mux.Put("/applications/:id/status", authMiddleware.ThenFunc(app.applicationHandler.UpdateStatus))
	mux.Get("/applications/user/:user_id", authMiddleware.ThenFunc(app.applicationHandler.GetApplicationsByUser))

	// AI
	mux.Post("/ai/rerank/jobs", authMiddleware.ThenFunc(app.rerankHandler.RerankJobs))
	mux.Post("/ai/rerank/companies", authMiddleware.ThenFunc(app.rerankHandler.RerankCompanies))
	mux.Post("/ai/rerank/profiles", authMiddleware.ThenFunc(app.rerankHandler.RerankProfiles))
	mux.Post("/ai/search", authMiddleware.ThenFunc(app.aiSearchHandler.Search))

	return mux
}
