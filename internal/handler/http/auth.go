package http

import (
	"encoding/json"
	"net/http"

	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/utils"
	"github.com/authgate/authgate/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Err(err).Msg("login failed")
		utils.WriteJSON(w, models.ErrorResponse{Message: messageFromError(err)}, statusFromError(err))
		return
	}

	log.Debug().Str("next", string(result.Next)).Msg("user passed the password stage")

	utils.WriteJSON(w, models.TokenResponse{Success: true, Token: result.Token, Next: result.Next}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	result, err := h.services.AuthService.Create(ctx, req.Email, req.ConfirmEmail, req.Password)
	if err != nil {
		log.Err(err).Msg("account creation failed")
		utils.WriteJSON(w, models.ErrorResponse{Message: messageFromError(err)}, statusFromError(err))
		return
	}

	log.Debug().Msg("account created")

	utils.WriteJSON(w, models.TokenResponse{Success: true, Token: result.Token, Next: result.Next}, http.StatusOK)
}

// verify reports whether the bearer credential still denotes an existing
// identity. Failure causes are never distinguished: a missing header is 401,
// everything else is a 200 with valid=false.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		log.Err(ErrEmptyAuthorizationHeader).Send()
		utils.WriteJSON(w, models.VerifyResponse{Valid: false}, http.StatusUnauthorized)
		return
	}

	tokenString, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		log.Err(err).Send()
		utils.WriteJSON(w, models.VerifyResponse{Valid: false}, http.StatusUnauthorized)
		return
	}

	valid := h.services.AuthService.VerifyPartial(ctx, tokenString)

	utils.WriteJSON(w, models.VerifyResponse{Valid: valid}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	authUser, ok := utils.GetAuthUserFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated identity in context")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.MeResponse{
		ID:    authUser.UserID,
		Email: authUser.Email,
		Role:  authUser.Role,
	}, http.StatusOK)
}
