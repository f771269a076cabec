package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListBabysitters godoc
// @Summary Babysitters linked to the family
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Babysitter
// @Router /api/v1/babysitters [get]
func ListBabysitters(svc service.BabysitterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.List(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// CreateBabysitter godoc
// @Summary Add a babysitter to the family
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.BabysitterInput true "Babysitter"
// @Success 201 {object} model.Babysitter
// @Failure 400 {object} errorPayload
// @Router /api/v1/babysitters [post]
func CreateBabysitter(svc service.BabysitterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.BabysitterInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		b, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// UpdateBabysitter godoc
// @Summary Replace a babysitter's details
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Babysitter ID"
// @Param body body service.BabysitterInput true "Babysitter"
// @Success 200 {object} model.Babysitter
// @Failure 404 {object} errorPayload
// @Router /api/v1/babysitters/{id} [put]
func UpdateBabysitter(svc service.BabysitterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var in service.BabysitterInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		b, err := svc.Update(c.UserContext(), caller(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(b)
	}
}

// DeleteBabysitter godoc
// @Summary Remove a babysitter from the family
// @Tags contacts
// @Security BearerAuth
// @Param id path int true "Babysitter ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/v1/babysitters/{id} [delete]
func DeleteBabysitter(svc service.BabysitterService) fiber.Handler {
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

// ListEmergencyContacts godoc
// @Summary Emergency contacts of the family
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.EmergencyContact
// @Router /api/v1/emergency-contacts [get]
func ListEmergencyContacts(svc service.EmergencyContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.List(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}

// CreateEmergencyContact godoc
// @Summary Add an emergency contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.EmergencyContactInput true "Contact"
// @Success 201 {object} model.EmergencyContact
// @Failure 400 {object} errorPayload
// @Router /api/v1/emergency-contacts [post]
func CreateEmergencyContact(svc service.EmergencyContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.EmergencyContactInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		ec, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ec)
	}
}

// UpdateEmergencyContact godoc
// @Summary Replace an emergency contact's details
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param body body service.EmergencyContactInput true "Contact"
// @Success 200 {object} model.EmergencyContact
// @Failure 404 {object} errorPayload
// @Router /api/v1/emergency-contacts/{id} [put]
func UpdateEmergencyContact(svc service.EmergencyContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var in service.EmergencyContactInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		ec, err := svc.Update(c.UserContext(), caller(c), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(ec)
	}
}

// DeleteEmergencyContact godoc
// @Summary Delete an emergency contact
// @Tags contacts
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/v1/emergency-contacts/{id} [delete]
func DeleteEmergencyContact(svc service.EmergencyContactService) fiber.Handler {
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
