package session

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Session handoff
	api.HandleFunc("/sessions", handler.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/resolve", handler.ResolveLink).Methods("GET")
	api.HandleFunc("/sessions/{id}", handler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{ref}/partner", handler.SubmitPartner).Methods("POST")

	// Read-only report viewing
	api.HandleFunc("/reports/{id}", handler.GetSession).Methods("GET")

	// Direct engine access
	api.HandleFunc("/match/preview", handler.PreviewMatch).Methods("POST")
}
