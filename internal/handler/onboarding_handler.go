package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	service "github.com/guardianlab/guardian/internal/services"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

type OnboardingHandler struct {
	service service.OnboardingService
}

func NewOnboardingHandler(s service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: s}
}

func (h *OnboardingHandler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/onboarding/health", writeHealth).Methods("GET")
}

func (h *OnboardingHandler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/onboarding", h.Create).Methods("POST")
	r.HandleFunc("/onboarding/{id}", h.GetByID).Methods("GET")
}

type onboardingResponse struct {
	OnboardingID string `json:"onboardingId"`
	Status       string `json:"status"`
}

func (h *OnboardingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		writeError(w, http.StatusBadRequest, errors.New("Content-Type must be application/json"))
		return
	}

	var input service.CreateOnboardingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, pkgerrors.ErrInvalidInput)
		return
	}

	onboarding, err := h.service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err)
		} else {
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, onboardingResponse{
		OnboardingID: onboarding.ID,
		Status:       string(onboarding.Status),
	})
}

func (h *OnboardingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	onboarding, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOnboardingNotFound) {
			writeError(w, http.StatusNotFound, err)
		} else {
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, onboarding)
}
