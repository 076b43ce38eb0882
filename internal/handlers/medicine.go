package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/services"
)

type MedicineHandler struct {
	medicineService services.MedicineService
}

func NewMedicineHandler(medicineService services.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicineService: medicineService}
}

func (mh *MedicineHandler) CreateItem(c *gin.Context) {
	if _, ok := staffIDFromContext(c); !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req struct {
		Name     string `json:"med_name"`
		Unit     string `json:"med_unit"`
		Quantity int    `json:"med_quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	item, err := mh.medicineService.CreateItem(c.Request.Context(), req.Name, req.Unit, req.Quantity)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, item)
}

func (mh *MedicineHandler) Request(c *gin.Context) {
	rpID, ok := residentIDFromContext(c)
	if !ok {
		RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
		return
	}
	var req services.MedicineRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	request, err := mh.medicineService.Request(c.Request.Context(), rpID, req)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, request)
}

func (mh *MedicineHandler) Dispense(c *gin.Context) {
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
	if err := mh.medicineService.Dispense(c.Request.Context(), staffID, requestID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (mh *MedicineHandler) Deny(c *gin.Context) {
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
	if err := mh.medicineService.Deny(c.Request.Context(), staffID, requestID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
