package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListReminders godoc
// @Summary Reminders in a date range
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "First day (YYYY-MM-DD)"
// @Param end_date query string true "Last day (YYYY-MM-DD)"
// @Success 200 {array} model.Reminder
// @Failure 400 {object} errorPayload
// @Router /api/v1/reminders [get]
func ListReminders(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err := dateQuery(c, "start_date")
		if err != nil {
			return invalidQuery(c, "start_date")
		}
		to, err := dateQuery(c, "end_date")
		if err != nil {
			return invalidQuery(c, "end_date")
		}
		reminders, err := svc.List(c.UserContext(), caller(c), from, to)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(reminders)
	}
}

// GetReminder godoc
// @Summary Get a reminder
// @Tags reminders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reminder ID"
// @Success 200 {object} model.Reminder
// @Failure 404 {object} errorPayload
// @Router /api/v1/reminders/{id} [get]
func GetReminder(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		r, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}

// CreateReminder godoc
// @Summary Create a reminder
// @Description One reminder per family per day.
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ReminderInput true "Reminder"
// @Success 201 {object} model.Reminder
// @Failure 409 {object} errorPayload
// @Router /api/v1/reminders [post]
func CreateReminder(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReminderInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		r, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// UpdateReminder godoc
// @Summary Replace a reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reminder ID"
// @Param body body service.ReminderInput true "Reminder"
// @Success 200 {object} model.Reminder
// @Router /api/v1/reminders/{id} [put]
func UpdateReminder(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var in service.ReminderInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		r, err := svc.Update(c.UserContext(), caller(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	}
}

// DeleteReminder godoc
// @Summary Delete a reminder
// @Tags reminders
// @Security BearerAuth
// @Param id path int true "Reminder ID"
// @Success 204
// @Router /api/v1/reminders/{id} [delete]
func DeleteReminder(svc service.ReminderService) fiber.Handler {
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
