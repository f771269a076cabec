package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"coparent/internal/http/middleware"
	"coparent/internal/model"
	"coparent/internal/service"
)

// caller is the authenticated user; routes behind middleware.Auth always have one.
func caller(c *fiber.Ctx) *model.User {
	return middleware.CurrentUser(c)
}

// decodeBody parses a JSON body into out, writing a 400 response on failure.
// ok is false when the response has already been written.
func decodeBody(c *fiber.Ctx, out any) (ok bool, err error) {
	if len(c.Body()) == 0 {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is required")
	}
	if err := c.BodyParser(out); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid JSON body: "+err.Error())
	}
	return true, nil
}

// int64Param reads a positive integer path parameter.
func int64Param(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *fiber.Ctx, name string) (model.Date, error) {
	v := c.Query(name)
	if v == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(v)
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c *fiber.Ctx, name string) (*bool, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// pageQuery reads page and limit; the service clamps out-of-range values.
func pageQuery(c *fiber.Ctx) (service.Page, error) {
	var p service.Page
	var err error
	if v := c.Query("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil {
			return p, err
		}
	}
	if v := c.Query("limit"); v != "" {
		if p.Limit, err = strconv.Atoi(v); err != nil {
			return p, err
		}
	}
	return p, nil
}

func invalidQuery(c *fiber.Ctx, name string) error {
	return writeFieldError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid "+name, name)
}
