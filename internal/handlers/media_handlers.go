package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/services"
	"github.com/fathima-sithara/social-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

type MediaHandler struct {
	svc *services.MediaService
	log *zap.Logger
}

func NewMediaHandler(svc *services.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{svc: svc, log: log}
}

// Upload accepts multipart/form-data with a 'file' field.
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "no file uploaded")
	}
	if fileHeader.Size > maxUploadSize {
		return utils.JSONError(c, fiber.StatusBadRequest, "file too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot open file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot read file")
	}

	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	media, err := h.svc.Upload(c.Context(), middleware.UserID(c), fileHeader.Filename, ct, data)
	if err != nil {
		h.log.Error("upload failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "file upload failed")
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, media)
}

// GetURL resolves a media id to a public or presigned URL.
func (h *MediaHandler) GetURL(c *fiber.Ctx) error {
	url, err := h.svc.GetURL(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "not found")
		}
		h.log.Error("get media url failed", zap.Error(err))
		return utils.JSONError(c, fiber.StatusInternalServerError, "failed to resolve url")
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"url": url})
}
