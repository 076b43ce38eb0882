package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
	"github.com/openbims/bims-backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's notifications, resident or staff.
func (nh *NotificationHandler) List(c *gin.Context) {
	limit, offset := paginate(c)
	if staffID, ok := staffIDFromContext(c); ok {
		notifications, err := nh.notificationService.ListForStaff(c.Request.Context(), staffID, limit, offset)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, notifications)
		return
	}
	if rpID, ok := residentIDFromContext(c); ok {
		notifications, err := nh.notificationService.ListForResident(c.Request.Context(), rpID, limit, offset)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, notifications)
		return
	}
	RespondError(c, http.StatusForbidden, "forbidden", pkgerrors.ErrUnauthorized)
}
