package user

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(r.Context(), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	auth.SetSessionCookie(w, resp.AccessToken, time.Duration(resp.ExpiresIn)*time.Second)
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), dto)
	if err != nil {
		errs.Write(w, err)
		return
	}
	auth.SetSessionCookie(w, resp.AccessToken, time.Duration(resp.ExpiresIn)*time.Second)
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.RefreshToken == "" {
		http.Error(w, "refresh_token required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Refresh(r.Context(), dto.RefreshToken)
	if err != nil {
		errs.Write(w, err)
		return
	}
	auth.SetSessionCookie(w, resp.AccessToken, time.Duration(resp.ExpiresIn)*time.Second)
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Me(r.Context())
	if err != nil {
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) ConnectGoogle(w http.ResponseWriter, r *http.Request) {
	var dto GoogleConnectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Code == "" {
		http.Error(w, "code required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ConnectGoogle(r.Context(), dto.Code)
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Failed to connect Google Calendar")
		errs.Write(w, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
