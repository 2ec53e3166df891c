package handlers

import (
	"errors"

	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CommentHandler struct {
	svc *services.CommentService
	log *zap.Logger
}

func NewCommentHandler(svc *services.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{svc: svc, log: log}
}

type commentReq struct {
	Comment   string `json:"comment"`
	OwnerName string `json:"owner_name"`
	PostID    string `json:"post_id"`
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	comment, err := h.svc.Create(c.Context(), middleware.UserID(c), req.OwnerName, req.PostID, req.Comment)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "comment and post_id are required"})
		}
		h.log.Error("create comment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.svc.GetAll(c.Context())
	if err != nil {
		h.log.Error("list comments failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(comments)
}

func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	comments, err := h.svc.GetByPostID(c.Context(), c.Params("id"))
	if err != nil {
		h.log.Error("list comments by post failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(comments)
}

func (h *CommentHandler) GetByID(c *fiber.Ctx) error {
	comment, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "comment not found"})
		}
		h.log.Error("get comment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	comment, err := h.svc.Update(c.Context(), c.Params("id"), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "comment is required"})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "comment not found"})
		}
		h.log.Error("update comment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "comment not found"})
		}
		h.log.Error("delete comment failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"message": "comment deleted"})
}
