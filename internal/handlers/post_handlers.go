package handlers

import (
	"errors"

	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PostHandler struct {
	svc *services.PostService
	log *zap.Logger
}

func NewPostHandler(svc *services.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{svc: svc, log: log}
}

type postReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	ImgURL  string `json:"img_url"`
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req postReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	post, err := h.svc.Create(c.Context(), middleware.UserID(c), req.Title, req.Content, req.ImgURL)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}
		h.log.Error("create post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, err := h.svc.GetAll(c.Context(), c.Query("owner"))
	if err != nil {
		h.log.Error("list posts failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(posts)
}

func (h *PostHandler) GetByID(c *fiber.Ctx) error {
	post, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("get post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(post)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	var req postReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	post, err := h.svc.Update(c.Context(), c.Params("id"), req.Title, req.Content, req.ImgURL)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("update post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "post not found"})
		}
		h.log.Error("delete post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"message": "post deleted"})
}
