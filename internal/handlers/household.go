package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openbims/bims-backend/internal/services"
)

type HouseholdHandler struct {
	householdService services.HouseholdService
}

func NewHouseholdHandler(householdService services.HouseholdService) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

func (hh *HouseholdHandler) Get(c *gin.Context) {
	detail, err := hh.householdService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (hh *HouseholdHandler) List(c *gin.Context) {
	limit, offset := paginate(c)
	households, total, err := hh.householdService.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"households": households, "total": total})
}
