package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/services"
)

type FamilyHandler struct {
	familyService services.FamilyService
}

func NewFamilyHandler(familyService services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

func (fh *FamilyHandler) Get(c *gin.Context) {
	detail, err := fh.familyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (fh *FamilyHandler) List(c *gin.Context) {
	limit, offset := paginate(c)
	families, err := fh.familyService.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, families)
}

func (fh *FamilyHandler) AddMember(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req struct {
		RpID string `json:"rp_id"`
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	composition, err := fh.familyService.AddMember(c.Request.Context(), staffID, c.Param("id"), req.RpID, req.Role)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, composition)
}
