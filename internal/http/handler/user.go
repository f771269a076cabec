package handler

import (
	"github.com/gofiber/fiber/v2"

	"coparent/internal/service"
)

// GetMe godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errorPayload
// @Router /api/v1/users/me [get]
func GetMe(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Me(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// UpdateMe godoc
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileInput true "Profile"
// @Success 200 {object} model.User
// @Failure 400 {object} errorPayload
// @Router /api/v1/users/me [put]
func UpdateMe(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProfileInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		u, err := svc.UpdateProfile(c.UserContext(), caller(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(u)
	}
}

// RegisterDevice godoc
// @Summary Register an APNS device token for push notifications
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param body body service.DeviceInput true "Device"
// @Success 204
// @Failure 503 {object} errorPayload
// @Router /api/v1/users/me/device [put]
func RegisterDevice(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.DeviceInput
		if ok, err := decodeBody(c, &in); !ok {
			return err
		}
		if err := svc.RegisterDevice(c.UserContext(), caller(c), in); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadPhoto godoc
// @Summary Upload profile photo
// @Description multipart/form-data with field "file"; JPEG, PNG, WebP or HEIC up to 10 MB.
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Photo"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorPayload
// @Router /api/v1/users/me/photo [post]
func UploadPhoto(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeFieldError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required", "file")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		url, err := svc.UploadPhoto(c.UserContext(), caller(c), service.PhotoUpload{
			Body:        f,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"profile_photo_url": url})
	}
}

// ListFamilyMembers godoc
// @Summary Family members
// @Tags family
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errorPayload
// @Router /api/v1/family/members [get]
func ListFamilyMembers(svc service.FamilyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := svc.Members(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(members)
	}
}

// ListCustodians godoc
// @Summary The two custodians, as parent1 and parent2
// @Tags family
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /api/v1/family/custodians [get]
func ListCustodians(svc service.FamilyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		custodians, err := svc.Custodians(c.UserContext(), caller(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(custodians)
	}
}
