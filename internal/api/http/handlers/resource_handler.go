package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resistance-admin/internal/domain"
	"github.com/spec-kit/resistance-admin/internal/resources"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

// ResourceHandler exposes one collection as REST: list, get, create, patch, delete.
type ResourceHandler[T, C, U any] struct {
	service resources.Service[T, C, U]
}

// RegisterResource mounts the collection's routes on router.
func RegisterResource[T, C, U any](router fiber.Router, svc resources.Service[T, C, U]) {
	h := &ResourceHandler[T, C, U]{service: svc}
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Get("/:id", h.Get)
	router.Patch("/:id", h.Update)
	router.Delete("/:id", h.Delete)
}

// List GET /.
func (h *ResourceHandler[T, C, U]) List(c *fiber.Ctx) error {
	params := domain.ListParams{
		Page:           c.QueryInt("page", 0),
		Limit:          c.QueryInt("limit", 0),
		DaemonUsername: c.Query("daemonUsername"),
	}
	page, err := h.service.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Get GET /:id.
func (h *ResourceHandler[T, C, U]) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Create POST /.
func (h *ResourceHandler[T, C, U]) Create(c *fiber.Ctx) error {
	var input C
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	item, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update PATCH /:id.
func (h *ResourceHandler[T, C, U]) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var input U
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	item, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// Delete DELETE /:id.
func (h *ResourceHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func pathID(c *fiber.Ctx) (string, error) {
	id, err := url.PathUnescape(c.Params("id"))
	if err != nil || id == "" {
		return "", apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}
