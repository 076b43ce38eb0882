package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openbims/bims-backend/internal/services"
)

type ResidentHandler struct {
	residentService services.ResidentService
	personalService services.PersonalService
}

func NewResidentHandler(residentService services.ResidentService, personalService services.PersonalService) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		personalService: personalService,
	}
}

func paginate(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (rh *ResidentHandler) Get(c *gin.Context) {
	detail, err := rh.residentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (rh *ResidentHandler) List(c *gin.Context) {
	limit, offset := paginate(c)
	profiles, total, err := rh.residentService.List(c.Request.Context(), limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"profiles": profiles, "total": total})
}

func (rh *ResidentHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "invalid_query", errMissingName)
		return
	}
	limit, offset := paginate(c)
	persons, err := rh.personalService.Search(c.Request.Context(), name, limit, offset)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, persons)
}
