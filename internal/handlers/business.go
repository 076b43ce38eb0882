package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/services"
)

type BusinessHandler struct {
	businessService services.BusinessService
}

func NewBusinessHandler(businessService services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (bh *BusinessHandler) Create(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req services.CreateBusinessInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	business, err := bh.businessService.Create(c.Request.Context(), staffID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, business)
}

func (bh *BusinessHandler) Get(c *gin.Context) {
	business, err := bh.businessService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, business)
}

func (bh *BusinessHandler) List(c *gin.Context) {
	limit, offset := paginate(c)
	businesses, err := bh.businessService.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, businesses)
}

func (bh *BusinessHandler) Update(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req services.UpdateBusinessInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	business, err := bh.businessService.Update(c.Request.Context(), staffID, c.Param("id"), req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, business)
}

func (bh *BusinessHandler) Verify(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	if err := bh.businessService.Verify(c.Request.Context(), staffID, c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (bh *BusinessHandler) History(c *gin.Context) {
	history, err := bh.businessService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, history)
}

func (bh *BusinessHandler) Files(c *gin.Context) {
	files, err := bh.businessService.Files(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, files)
}
