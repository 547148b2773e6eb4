package member

import (
	"errors"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/logger"
	"github.com/MohamedAbuthar/gas/feature/member/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the member roster.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the member routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/members")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList returns all members.
// @Summary List Members
// @Tags members
// @Produce json
// @Success 200 {array} models.Record
// @Failure 500 {object} map[string]string
// @Router /members [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Member list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

// HandleCreate stores a new member.
// @Summary Create Member
// @Tags members
// @Accept json
// @Produce json
// @Param member body models.Record true "Member"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /members [post]
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
		l.Error("Member create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// HandleGet returns one member.
// @Summary Get Member
// @Tags members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} models.Record
// @Failure 404 {object} map[string]string
// @Router /members/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	rec, err := h.service.Get(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rec)
}

// HandleUpdate replaces one member record.
// @Summary Update Member
// @Tags members
// @Accept json
// @Param id path string true "Member ID"
// @Param member body models.Record true "Member"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /members/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var rec models.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	err := h.service.Update(c.Context(), c.Params("id"), rec)
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDelete removes one member.
// @Summary Delete Member
// @Tags members
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /members/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "member not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
