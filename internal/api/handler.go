package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/copycraft-ai/copycraft/internal/credit"
	"github.com/copycraft-ai/copycraft/internal/history"
	"github.com/copycraft-ai/copycraft/internal/llm"
	"github.com/copycraft-ai/copycraft/internal/models"
	"github.com/copycraft-ai/copycraft/internal/preset"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	ledger  *credit.Ledger
	history *history.Store
	presets *preset.Store
	llm     *llm.Service
	logger  *zap.Logger
}

func NewHandler(ledger *credit.Ledger, hist *history.Store, presets *preset.Store, llmService *llm.Service, logger *zap.Logger) *Handler {
	return &Handler{
		ledger:  ledger,
		history: hist,
		presets: presets,
		llm:     llmService,
		logger:  logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type creditsResponse struct {
	UserID  string `json:"userId"`
	Credits int    `json:"credits"`
}

type historyResponse struct {
	UserID  string                `json:"userId"`
	History []models.HistoryEntry `json:"history"`
}

type appendHistoryRequest struct {
	Content string                   `json:"content"`
	Params  models.GenerationRequest `json:"params"`
}

type appendHistoryResponse struct {
	OK   bool                 `json:"ok"`
	Item *models.HistoryEntry `json:"item"`
}

type presetsResponse struct {
	UserID  string          `json:"userId"`
	Presets []models.Preset `json:"presets"`
}

type savePresetRequest struct {
	Name   string                   `json:"name"`
	Params models.GenerationRequest `json:"params"`
}

type savePresetResponse struct {
	OK     bool           `json:"ok"`
	Preset *models.Preset `json:"preset"`
}

type generateResponse struct {
	Item    *models.HistoryEntry `json:"item"`
	Credits int                  `json:"credits"`
}

type suggestionsRequest struct {
	Topic string `json:"topic"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["userId"]
	if id == "" {
		http.Error(w, "Missing userId", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	credits, err := h.ledger.Balance(r.Context(), uid)
	if err != nil {
		h.logger.Error("Failed to get credits", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to get credits")
		return
	}

	h.writeJSON(w, http.StatusOK, creditsResponse{UserID: uid, Credits: credits})
}

func (h *Handler) DecrementCredits(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	credits, err := h.ledger.Consume(r.Context(), uid, 1)
	if err != nil {
		h.logger.Error("Failed to decrement credits", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to decrement credits")
		return
	}

	h.writeJSON(w, http.StatusOK, creditsResponse{UserID: uid, Credits: credits})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	entries, err := h.history.List(r.Context(), uid)
	if err != nil {
		h.logger.Error("Failed to fetch history", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}

	h.writeJSON(w, http.StatusOK, historyResponse{UserID: uid, History: entries})
}

func (h *Handler) AppendHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req appendHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.history.Append(r.Context(), uid, req.Content, req.Params)
	if err != nil {
		h.logger.Error("Failed to add history", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to add history")
		return
	}

	h.writeJSON(w, http.StatusOK, appendHistoryResponse{OK: true, Item: item})
}

func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.history.Remove(r.Context(), uid, id); err != nil {
		h.logger.Error("Failed to delete history", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to delete history")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) GetPresets(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	presets, err := h.presets.List(r.Context(), uid)
	if err != nil {
		h.logger.Error("Failed to fetch presets", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch presets")
		return
	}

	h.writeJSON(w, http.StatusOK, presetsResponse{UserID: uid, Presets: presets})
}

func (h *Handler) SavePreset(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req savePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.presets.Save(r.Context(), uid, req.Name, req.Params)
	if err != nil {
		if errors.Is(err, preset.ErrEmptyName) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to save preset", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to save preset")
		return
	}

	h.writeJSON(w, http.StatusOK, savePresetResponse{OK: true, Preset: p})
}

func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]

	if err := h.presets.Remove(r.Context(), uid, id); err != nil {
		h.logger.Error("Failed to delete preset", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to delete preset")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Generate runs the whole generation flow server-side so clients only ever
// display the balance the ledger reports.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, credits, err := h.llm.GenerateContent(r.Context(), uid, req)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, llm.ErrInsufficientCredit):
		h.writeError(w, http.StatusPaymentRequired, err.Error())
		return
	case errors.Is(err, llm.ErrGenerationFailed):
		h.logger.Error("Generation failed", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusBadGateway, err.Error())
		return
	default:
		h.logger.Error("Generation flow failed", zap.Error(err), zap.String("userId", uid))
		h.writeError(w, http.StatusInternalServerError, "Failed to generate content")
		return
	}

	h.writeJSON(w, http.StatusOK, generateResponse{Item: item, Credits: credits})
}

func (h *Handler) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	suggestions := h.llm.SuggestTopics(r.Context(), req.Topic)
	h.writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
