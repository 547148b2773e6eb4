package attendance

import (
	"errors"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/logger"
	"github.com/MohamedAbuthar/gas/feature/attendance/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for attendance.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the attendance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/attendance")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList returns attendance records, optionally filtered by date.
// @Summary List Attendance
// @Tags attendance
// @Produce json
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {array} models.Record
// @Failure 500 {object} map[string]string
// @Router /attendance [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.List(c.Context(), c.Query("date"))
	if err != nil {
		l.Error("Attendance list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

// HandleCreate stores a new attendance record.
// @Summary Create Attendance Record
// @Tags attendance
// @Accept json
// @Produce json
// @Param record body models.Record true "Attendance record"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /attendance [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var rec models.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if rec.DeliveryManID == "" || rec.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "deliveryManId and date are required"})
	}

	id, err := h.service.Create(c.Context(), rec)
	if err != nil {
		if errors.Is(err, docstore.ErrPersistence) {
			l.Error("Attendance create failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// HandleGet returns one attendance record.
// @Summary Get Attendance Record
// @Tags attendance
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} models.Record
// @Failure 404 {object} map[string]string
// @Router /attendance/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	rec, err := h.service.Get(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "attendance record not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rec)
}

// HandleUpdate replaces one attendance record.
// @Summary Update Attendance Record
// @Tags attendance
// @Accept json
// @Param id path string true "Record ID"
// @Param record body models.Record true "Attendance record"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var rec models.Record
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	err := h.service.Update(c.Context(), c.Params("id"), rec)
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "attendance record not found"})
	}
	if err != nil {
		if errors.Is(err, docstore.ErrPersistence) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDelete removes one attendance record.
// @Summary Delete Attendance Record
// @Tags attendance
// @Param id path string true "Record ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /attendance/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "attendance record not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
