package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every endpoint. Routes with a {userId} segment 404 when
// the segment is empty, which matches the missing-userId rejection the API
// promises.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/credits/{userId}", h.GetCredits).Methods(http.MethodGet)
	apiRouter.HandleFunc("/credits/{userId}/decrement", h.DecrementCredits).Methods(http.MethodPost)

	apiRouter.HandleFunc("/history/{userId}", h.GetHistory).Methods(http.MethodGet)
	apiRouter.HandleFunc("/history/{userId}", h.AppendHistory).Methods(http.MethodPost)
	apiRouter.HandleFunc("/history/{userId}/{id}", h.DeleteHistory).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/presets/{userId}", h.GetPresets).Methods(http.MethodGet)
	apiRouter.HandleFunc("/presets/{userId}", h.SavePreset).Methods(http.MethodPost)
	apiRouter.HandleFunc("/presets/{userId}/{id}", h.DeletePreset).Methods(http.MethodDelete)

	apiRouter.HandleFunc("/generate/{userId}", h.Generate).Methods(http.MethodPost)
	apiRouter.HandleFunc("/suggestions", h.SuggestTopics).Methods(http.MethodPost)

	return r
}
