package api

import (
	"github.com/garnizeh/buildsite/internal/auth"
	"github.com/garnizeh/buildsite/internal/config"
	"github.com/garnizeh/buildsite/internal/db"
	"github.com/garnizeh/buildsite/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and services
	repo := sqlite.New(db, logger)
	authSvc := auth.NewService(cfg.JWTSecret)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, authSvc)
	companiesHandler := NewCompaniesHandler(repo)
	profilesHandler := NewProfilesHandler(repo)
	projectsHandler := NewProjectsHandler(repo, repo, repo, repo, repo)
	documentsHandler := NewDocumentsHandler(repo)
	bidsHandler := NewBidsHandler(repo)
	inspectionsHandler := NewInspectionsHandler(repo)
	changeOrdersHandler := NewChangeOrdersHandler(repo)

	// Open endpoints
	r.HandleFunc("/api/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddleware(authSvc))

	protected.HandleFunc("/me", authHandler.Me).Methods("GET")

	protected.HandleFunc("/projects", projectsHandler.CreateProject).Methods("POST")
	protected.HandleFunc("/projects", projectsHandler.ListProjects).Methods("GET")
	protected.HandleFunc("/projects/{id}", projectsHandler.GetProject).Methods("GET")
	protected.HandleFunc("/projects/{id}", projectsHandler.UpdateProject).Methods("PUT")
	protected.HandleFunc("/projects/{id}", projectsHandler.DeleteProject).Methods("DELETE")

	protected.HandleFunc("/documents", documentsHandler.CreateDocument).Methods("POST")
	protected.HandleFunc("/documents", documentsHandler.ListDocuments).Methods("GET")
	protected.HandleFunc("/documents/{id}", documentsHandler.GetDocument).Methods("GET")
	protected.HandleFunc("/documents/{id}", documentsHandler.UpdateDocument).Methods("PUT")
	protected.HandleFunc("/documents/{id}", documentsHandler.DeleteDocument).Methods("DELETE")

	protected.HandleFunc("/bids", bidsHandler.CreateBid).Methods("POST")
	protected.HandleFunc("/bids", bidsHandler.ListBids).Methods("GET")
	protected.HandleFunc("/bids/{id}", bidsHandler.GetBid).Methods("GET")
	protected.HandleFunc("/bids/{id}", bidsHandler.UpdateBid).Methods("PUT")
	protected.HandleFunc("/bids/{id}", bidsHandler.DeleteBid).Methods("DELETE")

	protected.HandleFunc("/inspections", inspectionsHandler.CreateInspection).Methods("POST")
	protected.HandleFunc("/inspections", inspectionsHandler.ListInspections).Methods("GET")
	protected.HandleFunc("/inspections/{id}", inspectionsHandler.GetInspection).Methods("GET")
	protected.HandleFunc("/inspections/{id}", inspectionsHandler.UpdateInspection).Methods("PUT")
	protected.HandleFunc("/inspections/{id}", inspectionsHandler.DeleteInspection).Methods("DELETE")

	protected.HandleFunc("/change_orders", changeOrdersHandler.CreateChangeOrder).Methods("POST")
	protected.HandleFunc("/change_orders", changeOrdersHandler.ListChangeOrders).Methods("GET")
	protected.HandleFunc("/change_orders/{id}", changeOrdersHandler.GetChangeOrder).Methods("GET")
	protected.HandleFunc("/change_orders/{id}", changeOrdersHandler.UpdateChangeOrder).Methods("PUT")
	protected.HandleFunc("/change_orders/{id}", changeOrdersHandler.DeleteChangeOrder).Methods("DELETE")

	// Companies and profiles have no delete routes.
	protected.HandleFunc("/companies", companiesHandler.CreateCompany).Methods("POST")
	protected.HandleFunc("/companies", companiesHandler.ListCompanies).Methods("GET")
	protected.HandleFunc("/companies/{id}", companiesHandler.GetCompany).Methods("GET")
	protected.HandleFunc("/companies/{id}", companiesHandler.UpdateCompany).Methods("PUT")

	protected.HandleFunc("/profiles", profilesHandler.ListProfiles).Methods("GET")
	protected.HandleFunc("/profiles/{id}", profilesHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profiles/{id}", profilesHandler.UpdateProfile).Methods("PUT")

	return r
}
