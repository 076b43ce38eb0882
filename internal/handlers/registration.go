package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/requestdata"
	"github.com/openbims/bims-backend/internal/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
	requestService      services.RequestRegistrationService
}

func NewRegistrationHandler(
	registrationService services.RegistrationService,
	requestService services.RequestRegistrationService,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		requestService:      requestService,
	}
}

// staffIDFromContext pulls the authenticated staff identity set by the auth
// middleware.
func staffIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.StaffID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.StaffID, true
}

func residentIDFromContext(c *gin.Context) (string, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.ResidentID == "" {
		return "", false
	}
	return rd.ResidentID, true
}

func (rh *RegistrationHandler) Register(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req services.RegisterResidentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := rh.registrationService.RegisterResident(c.Request.Context(), staffID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (rh *RegistrationHandler) Stage(c *gin.Context) {
	rpID, ok := residentIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req services.StageRegistrationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	request, err := rh.requestService.Stage(c.Request.Context(), rpID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, request)
}

func (rh *RegistrationHandler) GetRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	request, err := rh.requestService.Get(c.Request.Context(), requestID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, request)
}

func (rh *RegistrationHandler) ApproveRequest(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := rh.requestService.Approve(c.Request.Context(), staffID, requestID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (rh *RegistrationHandler) RejectRequest(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := rh.requestService.Reject(c.Request.Context(), staffID, requestID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
