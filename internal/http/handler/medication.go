package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListMedications godoc
// @Summary List medications
// @Tags medications
// @Produce json
// @Security BearerAuth
// @Param is_active query bool false "Filter by active flag"
// @Param reminder_enabled query bool false "Filter by reminder flag"
// @Param sort_by query string false "name, start_date or created_at"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} service.MedicationPage
// @Failure 400 {object} errorPayload
// @Router /api/v1/medications [get]
func ListMedications(svc service.MedicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q service.MedicationQuery
		var err error
		if q.IsActive, err = boolQuery(c, "is_active"); err != nil {
			return invalidQuery(c, "is_active")
		}
		if q.ReminderEnabled, err = boolQuery(c, "reminder_enabled"); err != nil {
			return invalidQuery(c, "reminder_enabled")
		}
		if q.Page, err = pageQuery(c); err != nil {
			return invalidQuery(c, "page")
		}
		q.SortBy = c.Query("sort_by")
		q.SortOrder = c.Query("sort_order")

		res, err := svc.List(c.UserContext(), caller(c), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ListMedicationReminders godoc
// @Summary Active medications with reminders and their next reminder time
// @Tags medications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.MedicationReminders
// @Router /api/v1/medications/reminders [get]
func ListMedicationReminders(svc service.MedicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Reminders(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// GetMedication godoc
// @Summary Get a medication
// @Tags medications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Success 200 {object} model.Medication
// @Failure 404 {object} errorPayload
// @Router /api/v1/medications/{id} [get]
func GetMedication(svc service.MedicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		m, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(m)
	}
}

// CreateMedication godoc
// @Summary Add a medication
// @Tags medications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MedicationInput true "Medication"
// @Success 201 {object} model.Medication
// @Failure 400 {object} errorPayload
// @Router /api/v1/medications [post]
func CreateMedication(svc service.MedicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.MedicationInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		m, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

// UpdateMedication godoc
// @Summary Partially update a medication
// @Tags medications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Param body body service.MedicationPatch true "Fields to change"
// @Success 200 {object} model.Medication
// @Router /api/v1/medications/{id} [put]
func UpdateMedication(svc service.MedicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var patch service.MedicationPatch
		if ok, err := decodeBody(c, &patch); !ok {
			return err
		}
		m, err := svc.Update(c.UserContext(), caller(c), id, patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(m)
	}
}

// DeleteMedication godoc
// @Summary Delete a medication
// @Tags medications
// @Security BearerAuth
// @Param id path int true "Medication ID"
// @Success 204
// @Router /api/v1/medications/{id} [delete]
func DeleteMedication(svc service.MedicationService) fiber.Handler {
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
