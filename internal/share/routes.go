package share

import (
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, handler *Handler) {
	api := router.PathPrefix("/api/v1/share").Subrouter()

	api.HandleFunc("/invite", handler.SendInvite).Methods("POST")
}
