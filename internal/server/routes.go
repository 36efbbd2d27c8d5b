package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// System endpoints
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// Venue endpoints (swipe flow)
	mux.HandleFunc("/api/venues/search", s.app.VenueHandler.SearchHandler)
	mux.HandleFunc("/api/venues/match", s.app.VenueHandler.MatchHandler)
	mux.HandleFunc("/api/venues/recommendation", s.app.VenueHandler.RecommendationHandler)
	mux.HandleFunc("/api/venues/final-recommendation", s.app.VenueHandler.FinalRecommendationHandler)
	mux.HandleFunc("/api/venues/", s.app.VenueHandler.GetVenueHandler) // GET /{id}

	// Vibe-driven restaurant recommendations
	mux.HandleFunc("/api/restaurants/recommendations", s.app.RestaurantHandler.RecommendationsHandler)

	// Everything else is a JSON 404
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
