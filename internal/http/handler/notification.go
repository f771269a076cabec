package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListNotificationEmails godoc
// @Summary Extra addresses that receive reminder emails
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.NotificationEmail
// @Router /api/v1/notifications/emails [get]
func ListNotificationEmails(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		emails, err := svc.List(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(emails)
	}
}

// AddNotificationEmail godoc
// @Summary Add a notification email
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.NotificationEmailInput true "Address"
// @Success 201 {object} model.NotificationEmail
// @Failure 409 {object} errorPayload
// @Router /api/v1/notifications/emails [post]
func AddNotificationEmail(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.NotificationEmailInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		e, err := svc.Add(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// UpdateNotificationEmail godoc
// @Summary Change a notification email
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Email ID"
// @Param body body service.NotificationEmailInput true "Address"
// @Success 200 {object} model.NotificationEmail
// @Router /api/v1/notifications/emails/{id} [put]
func UpdateNotificationEmail(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var in service.NotificationEmailInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		e, err := svc.Update(c.UserContext(), caller(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	}
}

// DeleteNotificationEmail godoc
// @Summary Remove a notification email
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Email ID"
// @Success 204
// @Router /api/v1/notifications/emails/{id} [delete]
func DeleteNotificationEmail(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), caller(c), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CreateGroupChat godoc
// @Summary Get or create the group conversation for a contact
// @Tags group-chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.GroupChatInput true "Contact"
// @Success 200 {object} service.GroupChatResult "existing group"
// @Success 201 {object} service.GroupChatResult "new group"
// @Router /api/v1/group-chat [post]
func CreateGroupChat(svc service.GroupChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.GroupChatInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		res, err := svc.CreateOrGet(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		status := fiber.StatusCreated
		if res.Exists {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(res)
	}
}
