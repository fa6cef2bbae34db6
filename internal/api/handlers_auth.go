// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/models"
	"github.com/tomtom215/famtrack/internal/validation"
)

// Signup creates a family member account and issues a session token.
//
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Account details"
// @Success 201 {object} models.APIResponse{data=models.AuthResponse}
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /auth/signup [post]
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SignupRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account", err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrEmailExists) {
			respondError(w, http.StatusConflict, "EMAIL_EXISTS", "An account with this email already exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account", err)
		return
	}

	h.issueSession(w, r, user, start, http.StatusCreated)
}

// Signin authenticates a family member and issues a session token.
//
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SigninRequest true "Credentials"
// @Success 200 {object} models.APIResponse{data=models.AuthResponse}
// @Failure 401 {object} models.APIResponse
// @Router /auth/signin [post]
func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SigninRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Same response as a wrong password: do not leak which
			// emails have accounts.
			respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign in", err)
		return
	}

	if err := h.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	h.issueSession(w, r, user, start, http.StatusOK)
}

// Logout clears the session cookie. Tokens are stateless, so the JWT
// itself stays valid until it expires.
//
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /auth/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondSuccess(w, http.StatusOK, map[string]string{"message": "signed out"}, time.Now())
}

// issueSession generates a token, sets the session cookie, and writes
// the auth response.
func (h *Handlers) issueSession(w http.ResponseWriter, r *http.Request, user *models.User, start time.Time, status int) {
	token, err := h.jwt.GenerateToken(user.UserID, user.Name, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create session", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.jwt.SessionTimeout().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})

	logging.Info().Str("user_id", user.UserID).Msg("Session issued")

	respondSuccess(w, status, models.AuthResponse{
		Token: token,
		User: models.AuthUser{
			ID:    user.UserID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, start)
}
