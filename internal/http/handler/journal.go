package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListJournalEntries godoc
// @Summary Family journal, newest first
// @Tags journal
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} service.JournalPage
// @Router /api/v1/journal [get]
func ListJournalEntries(svc service.JournalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageQuery(c)
		if err != nil {
			return invalidQuery(c, "page")
		}
		res, err := svc.List(c.UserContext(), caller(c), page)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// GetJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} model.JournalEntry
// @Failure 404 {object} errorPayload
// @Router /api/v1/journal/{id} [get]
func GetJournalEntry(svc service.JournalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		e, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	}
}

// CreateJournalEntry godoc
// @Summary Write a journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.JournalInput true "Entry"
// @Success 201 {object} model.JournalEntry
// @Router /api/v1/journal [post]
func CreateJournalEntry(svc service.JournalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.JournalInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		e, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// UpdateJournalEntry godoc
// @Summary Edit your own journal entry
// @Tags journal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Param body body service.JournalInput true "Entry"
// @Success 200 {object} model.JournalEntry
// @Failure 403 {object} errorPayload
// @Router /api/v1/journal/{id} [put]
func UpdateJournalEntry(svc service.JournalService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var in service.JournalInput
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

// DeleteJournalEntry godoc
// @Summary Delete your own journal entry
// @Tags journal
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 204
// @Failure 403 {object} errorPayload
// @Router /api/v1/journal/{id} [delete]
func DeleteJournalEntry(svc service.JournalService) fiber.Handler {
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
