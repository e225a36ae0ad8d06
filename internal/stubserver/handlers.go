package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/auth"
)

// Handlers serves the four endpoints of the account service wire contract.
type Handlers struct {
	store    *Store
	jwt      *auth.JWTManager
	username string
	password string
	logger   zerolog.Logger
}

func NewHandlers(store *Store, jwt *auth.JWTManager, username, password string, logger zerolog.Logger) *Handlers {
	return &Handlers{
		store:    store,
		jwt:      jwt,
		username: username,
		password: password,
		logger:   logger,
	}
}

// ValidateAccount handles GET /accounts/validate/{id}.
func (h *Handlers) ValidateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.store.Exists(id) {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "valid": true})
}

// GetBalance handles GET /accounts/balance/{id}. The optional format query
// parameter switches between the three response shapes the client accepts:
// the default JSON object, format=bare for a bare number, and format=text
// for a text/plain body.
func (h *Handlers) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	balance, err := h.store.Balance(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}

	switch r.URL.Query().Get("format") {
	case "bare":
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(balance.String()))
	case "text":
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(balance.String()))
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"id":      id,
			"balance": json.Number(balance.String()),
		})
	}
}

type transferRequest struct {
	FromAccount string      `json:"fromAccount"`
	ToAccount   string      `json:"toAccount"`
	Amount      json.Number `json:"amount"`
}

// SubmitTransfer handles POST /transfer.
func (h *Handlers) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		writeError(w, http.StatusBadRequest, "amount must be a positive number")
		return
	}

	txID, err := h.store.Transfer(req.FromAccount, req.ToAccount, amount)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, "account not found")
		return
	case errors.Is(err, ErrInsufficientFunds):
		writeJSON(w, http.StatusConflict, map[string]any{
			"status":  "FAILED",
			"message": "Insufficient funds",
		})
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "transfer failed")
		return
	}

	h.logger.Info().
		Str("from", req.FromAccount).
		Str("to", req.ToAccount).
		Str("amount", amount.String()).
		Str("transaction_id", txID).
		Msg("transfer posted")

	writeJSON(w, http.StatusOK, map[string]any{
		"transactionId": txID,
		"status":        "SUCCESS",
	})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthToken handles POST /authToken?claim={claim}.
func (h *Handlers) AuthToken(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if creds.Username != h.username || creds.Password != h.password {
		writeError(w, http.StatusUnauthorized, "bad credentials")
		return
	}

	claim := r.URL.Query().Get("claim")
	if claim == "" {
		claim = "enquiry"
	}

	token, err := h.jwt.Generate(creds.Username, claim)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
