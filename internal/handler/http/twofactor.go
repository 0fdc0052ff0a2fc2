package http

import (
	"encoding/json"
	"net/http"

	"github.com/authgate/authgate/internal/logger"
	"github.com/authgate/authgate/internal/utils"
	"github.com/authgate/authgate/models"
)

func (h *Handler) twoFactorSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.TwoFactorSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	result, err := h.services.TwoFactorService.Setup(ctx, req.Token)
	if err != nil {
		log.Err(err).Msg("second factor setup failed")
		utils.WriteJSON(w, models.ErrorResponse{Message: messageFromError(err)}, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.TwoFactorSetupResponse{QRCode: result.QRCode, Secret: result.Secret}, http.StatusOK)
}

func (h *Handler) twoFactorVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.TwoFactorVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	result, err := h.services.TwoFactorService.Verify(ctx, req.Token, req.Code)
	if err != nil {
		log.Err(err).Msg("second factor verification failed")
		utils.WriteJSON(w, models.ErrorResponse{Message: messageFromError(err)}, statusFromError(err))
		return
	}

	log.Debug().Msg("second factor accepted, full credential issued")

	utils.WriteJSON(w, models.TokenResponse{Success: true, Token: result.Token, Next: result.Next}, http.StatusOK)
}
