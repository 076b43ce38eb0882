package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/services"
)

var errMissingName = errors.New("name query parameter is required")

type PersonalHandler struct {
	personalService services.PersonalService
}

func NewPersonalHandler(personalService services.PersonalService) *PersonalHandler {
	return &PersonalHandler{personalService: personalService}
}

func perIDParam(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

func (ph *PersonalHandler) Get(c *gin.Context) {
	perID, err := perIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	person, err := ph.personalService.Get(c.Request.Context(), perID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, person)
}

func (ph *PersonalHandler) Update(c *gin.Context) {
	staffID, ok := staffIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	perID, err := perIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req services.UpdatePersonalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	person, err := ph.personalService.Update(c.Request.Context(), staffID, perID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, person)
}

func (ph *PersonalHandler) History(c *gin.Context) {
	perID, err := perIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	history, err := ph.personalService.History(c.Request.Context(), perID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, history)
}

func (ph *PersonalHandler) AddressesAt(c *gin.Context) {
	perID, err := perIDParam(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	historyID, err := strconv.Atoi(c.Param("history_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_history_id", err)
		return
	}
	links, err := ph.personalService.AddressesAt(c.Request.Context(), perID, historyID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, links)
}
