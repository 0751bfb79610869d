package notificationController

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"plms/apperrors"
	"plms/middleware"
	notificationService "plms/services/notification"
)

// MyNotifications lists the caller's notifications, newest first
func MyNotifications(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	notifications, err := notificationService.ListForUser(userId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched!", notifications)
}

// MarkRead flags one of the caller's notifications as read
func MarkRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	notification, err := notificationService.MarkRead(uint(id), userId)
	if err != nil {
		return middleware.JsonResponse(c, apperrors.HTTPStatus(err), false, apperrors.Message(err), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}
