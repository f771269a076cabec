package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

func medicalProviderQuery(c *fiber.Ctx) (service.MedicalProviderQuery, error) {
	q := service.MedicalProviderQuery{
		Specialty: c.Query("specialty"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	var err error
	q.Page, err = pageQuery(c)
	return q, err
}

// ListMedicalProviders godoc
// @Summary List medical providers
// @Tags medical-providers
// @Produce json
// @Security BearerAuth
// @Param specialty query string false "Specialty substring"
// @Param sort_by query string false "name, specialty or created_at"
// @Param sort_order query string false "asc or desc"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} service.MedicalProviderPage
// @Failure 400 {object} errorPayload
// @Router /api/v1/medical-providers [get]
func ListMedicalProviders(svc service.MedicalProviderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := medicalProviderQuery(c)
		if err != nil {
			return invalidQuery(c, "page")
		}
		res, err := svc.List(c.UserContext(), caller(c), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// SearchMedicalProviders godoc
// @Summary Search providers by name, specialty or address
// @Tags medical-providers
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} service.MedicalProviderPage
// @Failure 400 {object} errorPayload
// @Router /api/v1/medical-providers/search [get]
func SearchMedicalProviders(svc service.MedicalProviderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := medicalProviderQuery(c)
		if err != nil {
			return invalidQuery(c, "page")
		}
		q.Search = c.Query("q")
		res, err := svc.Search(c.UserContext(), caller(c), q)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// GetMedicalProvider godoc
// @Summary Get a medical provider
// @Tags medical-providers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Provider ID"
// @Success 200 {object} model.MedicalProvider
// @Failure 404 {object} errorPayload
// @Router /api/v1/medical-providers/{id} [get]
func GetMedicalProvider(svc service.MedicalProviderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		p, err := svc.Get(c.UserContext(), caller(c), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// CreateMedicalProvider godoc
// @Summary Add a medical provider
// @Tags medical-providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.MedicalProviderInput true "Provider"
// @Success 201 {object} model.MedicalProvider
// @Failure 400 {object} errorPayload
// @Router /api/v1/medical-providers [post]
func CreateMedicalProvider(svc service.MedicalProviderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.MedicalProviderInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		p, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdateMedicalProvider godoc
// @Summary Partially update a medical provider
// @Tags medical-providers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Provider ID"
// @Param body body service.MedicalProviderPatch true "Fields to change"
// @Success 200 {object} model.MedicalProvider
// @Router /api/v1/medical-providers/{id} [put]
func UpdateMedicalProvider(svc service.MedicalProviderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := int64Param(c, "id")
		if !ok {
			return invalidID(c)
		}
		var patch service.MedicalProviderPatch
		if ok, err := decodeBody(c, &patch); !ok {
			return err
		}
		p, err := svc.Update(c.UserContext(), caller(c), id, patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	}
}

// DeleteMedicalProvider godoc
// @Summary Delete a medical provider
// @Tags medical-providers
// @Security BearerAuth
// @Param id path int true "Provider ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/v1/medical-providers/{id} [delete]
func DeleteMedicalProvider(svc service.MedicalProviderService) fiber.Handler {
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
