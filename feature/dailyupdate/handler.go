package dailyupdate

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/logger"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

// Handler handles HTTP requests for daily-update batches.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the daily-update routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/daily-updates")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Post("/import", h.HandleImport)
	group.Get("/:id", h.HandleGet)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
	group.Get("/:id/export", h.HandleExport)
}

// batchRequest is the write payload for daily-update batches.
type batchRequest struct {
	Author  string                         `json:"author"`
	Date    string                         `json:"date"`
	Entries map[string]*models.LedgerEntry `json:"entries"`
}

// validate rejects empty batches and explicit JSON null entries.
func (r *batchRequest) validate() error {
	if len(r.Entries) == 0 {
		return errors.New("entries are required")
	}
	for id, e := range r.Entries {
		if e == nil {
			return fmt.Errorf("entry %q is null", id)
		}
	}
	return nil
}

// HandleList returns all stored batches.
// @Summary List Daily Updates
// @Tags daily-updates
// @Produce json
// @Success 200 {array} models.Batch
// @Failure 500 {object} map[string]string
// @Router /daily-updates [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	batches, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Daily-update list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(batches)
}

// HandleCreate stores a new batch of ledger entries.
// @Summary Create Daily Update Batch
// @Tags daily-updates
// @Accept json
// @Produce json
// @Param batch body batchRequest true "Batch"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /daily-updates [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := h.service.SaveBatch(c.Context(), req.Author, req.Date, req.Entries)
	if err != nil {
		l.Error("Daily-update create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// HandleGet returns one batch with its decoded entries.
// @Summary Get Daily Update Batch
// @Tags daily-updates
// @Produce json
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /daily-updates/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	batch, err := h.service.Get(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "daily update not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	entries, err := batch.Entries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"id":      batch.ID,
		"title":   batch.Title,
		"author":  batch.Author,
		"date":    batch.Date,
		"status":  batch.Status,
		"entries": entries,
	})
}

// HandleUpdate replaces the entries of one batch.
// @Summary Update Daily Update Batch
// @Tags daily-updates
// @Accept json
// @Param id path string true "Batch ID"
// @Param batch body batchRequest true "Batch"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /daily-updates/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := h.service.Update(c.Context(), c.Params("id"), req.Entries)
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "daily update not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// HandleDelete removes one batch.
// @Summary Delete Daily Update Batch
// @Tags daily-updates
// @Param id path string true "Batch ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /daily-updates/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	err := h.service.Delete(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "daily update not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// HandleExport streams one batch as an xlsx workbook.
// @Summary Export Daily Update Batch
// @Tags daily-updates
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Batch ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /daily-updates/{id}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, filename, err := h.service.Export(c.Context(), c.Params("id"))
	if errors.Is(err, docstore.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "daily update not found"})
	}
	if err != nil {
		l.Error("Daily-update export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// HandleImport ingests an uploaded workbook, reconciles it against the
// active member roster, and stores the result as a new batch.
// @Summary Import Daily Update Workbook
// @Tags daily-updates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook"
// @Param author formData string false "Author"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /daily-updates/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read file"})
	}
	defer file.Close()

	id, entries, err := h.service.Import(c.Context(), file, c.FormValue("author"))
	if errors.Is(err, ErrImportFormat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Daily-update import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        id,
		"entries":   entries,
		"unmatched": UnmatchedCount(entries),
	})
}
