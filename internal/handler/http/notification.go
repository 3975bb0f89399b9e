package http

import (
	"net/http"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/notification"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
)

type NotificationHandler interface {
	MyFeed(w http.ResponseWriter, r *http.Request)
	CoordinatorFeed(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService}
}

// MyFeed implements NotificationHandler.
func (h *notificationHandlerImpl) MyFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.notificationService.SubjectFeed(r.Context(), middleware.TokenNIK(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// CoordinatorFeed implements NotificationHandler.
func (h *notificationHandlerImpl) CoordinatorFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.notificationService.CoordinatorFeed(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}
