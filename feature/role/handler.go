package role

import (
	"errors"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/logger"
	"github.com/MohamedAbuthar/gas/feature/role/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for role management.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the role routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/roles")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList returns all roles.
// @Summary List Roles
// @Tags roles
// @Produce json
// @Success 200 {array} models.Record
// @Failure 500 {object} map[string]string
// @Router /roles [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Role list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

// HandleCreate stores a new role.
// @Summary Create Role
// @Tags roles
// @Accept json
// @Produce json
// @Param role body models.Record true "Role"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /roles [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var rec models.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if rec.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	id, err := h.service.Create(c.Context(), rec)
	if err != nil {
		l.Error("Role create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// HandleGet returns one role.
// @Summary Get Role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID"
// @Success 200 {object} models.Record
// @Failure 404 {object} map[string]string
// @Router /roles/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	rec, err := h.service.Get(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "role not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rec)
}

// HandleUpdate replaces one role record.
// @Summary Update Role
// @Tags roles
// @Accept json
// @Param id path string true "Role ID"
// @Param role body models.Record true "Role"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /roles/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var rec models.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	err := h.service.Update(c.Context(), c.Params("id"), rec)
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "role not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDelete removes one role.
// @Summary Delete Role
// @Tags roles
// @Param id path string true "Role ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /roles/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "role not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
