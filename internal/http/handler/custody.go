package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/model"
	"coparent/internal/service"
)

// yearMonth reads :year and :month; the service range-checks them.
func yearMonth(c *fiber.Ctx) (year, month int, ok bool) {
	year, err := c.ParamsInt("year")
	if err != nil {
		return 0, 0, false
	}
	month, err = c.ParamsInt("month")
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}

// GetCustodyMonth godoc
// @Summary Custody records for a month
// @Description Future days without a record are filled from the active schedule template first.
// @Tags custody
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} model.CustodyRecord
// @Failure 400 {object} errorPayload
// @Router /api/v1/custody/{year}/{month} [get]
func GetCustodyMonth(svc service.CustodyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, ok := yearMonth(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MONTH", "year and month must be integers")
		}
		records, err := svc.Month(c.UserContext(), caller(c), year, month)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(records)
	}
}

// GetHandoffs godoc
// @Summary Handoff days with a handoff time for a month
// @Tags custody
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {array} model.CustodyRecord
// @Router /api/v1/custody/handoff-only/{year}/{month} [get]
func GetHandoffs(svc service.CustodyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, ok := yearMonth(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MONTH", "year and month must be integers")
		}
		records, err := svc.Handoffs(c.UserContext(), caller(c), year, month)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(records)
	}
}

// CreateCustody godoc
// @Summary Create a custody record
// @Tags custody
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CustodyInput true "Record"
// @Success 201 {object} model.CustodyRecord
// @Failure 409 {object} errorPayload
// @Router /api/v1/custody [post]
func CreateCustody(svc service.CustodyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CustodyInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		rec, err := svc.Create(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// UpdateCustody godoc
// @Summary Replace the custody record for a date
// @Tags custody
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param body body service.CustodyInput true "Record"
// @Success 200 {object} model.CustodyRecord
// @Failure 404 {object} errorPayload
// @Router /api/v1/custody/{date} [put]
func UpdateCustody(svc service.CustodyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date, err := model.ParseDate(c.Params("date"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", err.Error())
		}
		var in service.CustodyInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		rec, err := svc.Update(c.UserContext(), caller(c), date, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rec)
	}
}

type bulkCustodyRequest struct {
	Records []service.CustodyInput `json:"records"`
}

// BulkCreateCustody godoc
// @Summary Create many custody records at once
// @Description Days that already have a record are left untouched.
// @Tags custody
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body bulkCustodyRequest true "Records"
// @Success 201 {object} map[string]int
// @Failure 400 {object} errorPayload
// @Router /api/v1/custody/bulk [post]
func BulkCreateCustody(svc service.CustodyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkCustodyRequest
		if ok, err := decodeBody(c, &req); !ok {
			return err
		}
		n, err := svc.Bulk(c.UserContext(), caller(c), req.Records)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"records_created": n})
	}
}
