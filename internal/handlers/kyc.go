package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbims/bims-backend/internal/services"
)

type KycHandler struct {
	kycService services.KycService
}

func NewKycHandler(kycService services.KycService) *KycHandler {
	return &KycHandler{kycService: kycService}
}

func (kh *KycHandler) Verify(c *gin.Context) {
	perID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.KycSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	verification, err := kh.kycService.Verify(c.Request.Context(), perID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, verification)
}

func (kh *KycHandler) Results(c *gin.Context) {
	perID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	results, err := kh.kycService.Results(c.Request.Context(), perID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, results)
}
