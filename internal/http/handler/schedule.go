package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListScheduleTemplates godoc
// @Summary List schedule templates
// @Tags schedule-templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ScheduleTemplate
// @Router /api/v1/schedule-templates [get]
func ListScheduleTemplates(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		templates, err := svc.List(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(templates)
	}
}

// GetScheduleTemplate godoc
// @Summary Get a schedule template
// @Tags schedule-templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {object} model.ScheduleTemplate
// @Failure 404 {object} errorPayload
// @Router /api/v1/schedule-templates/{id} [get]
func GetScheduleTemplate(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		t, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(t)
	}
}

// CreateScheduleTemplate godoc
// @Summary Create a schedule template
// @Description An active template deactivates the family's other templates.
// @Tags schedule-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TemplateInput true "Template"
// @Success 201 {object} model.ScheduleTemplate
// @Failure 400 {object} errorPayload
// @Router /api/v1/schedule-templates [post]
func CreateScheduleTemplate(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.TemplateInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		t, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// UpdateScheduleTemplate godoc
// @Summary Replace a schedule template
// @Tags schedule-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Param body body service.TemplateInput true "Template"
// @Success 200 {object} model.ScheduleTemplate
// @Router /api/v1/schedule-templates/{id} [put]
func UpdateScheduleTemplate(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var in service.TemplateInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		t, err := svc.Update(c.UserContext(), caller(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(t)
	}
}

// DeleteScheduleTemplate godoc
// @Summary Delete a schedule template
// @Tags schedule-templates
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 204
// @Router /api/v1/schedule-templates/{id} [delete]
func DeleteScheduleTemplate(svc service.ScheduleService) fiber.Handler {
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

// ApplyScheduleTemplate godoc
// @Summary Write a template into the calendar
// @Description Starts tomorrow at the earliest and defaults to 90 days.
// @Tags schedule-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ApplyInput true "Apply request"
// @Success 200 {object} service.ApplyResult
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/v1/schedule-templates/apply [post]
func ApplyScheduleTemplate(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ApplyInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		res, err := svc.Apply(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// PreviewScheduleTemplate godoc
// @Summary Dry-run of apply
// @Tags schedule-templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ApplyInput true "Apply request"
// @Success 200 {object} service.PreviewResult
// @Router /api/v1/schedule-templates/preview [post]
func PreviewScheduleTemplate(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ApplyInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		res, err := svc.Preview(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}
