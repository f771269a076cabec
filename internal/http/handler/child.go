package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// ListChildren godoc
// @Summary List children
// @Tags children
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Child
// @Router /api/v1/children [get]
func ListChildren(svc service.ChildService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		children, err := svc.List(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(children)
	}
}

// CreateChild godoc
// @Summary Add a child
// @Tags children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChildInput true "Child"
// @Success 201 {object} model.Child
// @Failure 400 {object} errorPayload
// @Router /api/v1/children [post]
func CreateChild(svc service.ChildService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ChildInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		child, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(child)
	}
}

// UpdateChild godoc
// @Summary Update a child
// @Tags children
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Param body body service.ChildInput true "Child"
// @Success 200 {object} model.Child
// @Failure 404 {object} errorPayload
// @Router /api/v1/children/{id} [put]
func UpdateChild(svc service.ChildService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ChildInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		child, err := svc.Update(c.UserContext(), caller(c), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(child)
	}
}

// DeleteChild godoc
// @Summary Remove a child
// @Tags children
// @Security BearerAuth
// @Param id path string true "Child ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/v1/children/{id} [delete]
func DeleteChild(svc service.ChildService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), caller(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
