package handlers

import (
	"errors"

	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/fathima-sithara/social-service/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type LikeHandler struct {
	svc *services.LikeService
	log *zap.Logger
}

func NewLikeHandler(svc *services.LikeService, log *zap.Logger) *LikeHandler {
	return &LikeHandler{svc: svc, log: log}
}

type likeReq struct {
	ObjectID string `json:"object_id"`
	ObjType  string `json:"obj_type"`
}

func (h *LikeHandler) Add(c *fiber.Ctx) error {
	var req likeReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	like, err := h.svc.Add(c.Context(), middleware.UserID(c), req.ObjectID, req.ObjType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrInvalidObjectType),
			errors.Is(err, services.ErrLikeAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("add like failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to add like"})
	}
	return c.Status(fiber.StatusCreated).JSON(like)
}

func (h *LikeHandler) Remove(c *fiber.Ctx) error {
	var req likeReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	err := h.svc.Remove(c.Context(), middleware.UserID(c), req.ObjectID, req.ObjType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidObjectType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "like not found"})
		}
		h.log.Error("remove like failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove like"})
	}
	return c.JSON(fiber.Map{"message": "like removed successfully"})
}

func (h *LikeHandler) Check(c *fiber.Ctx) error {
	hasLiked, err := h.svc.HasLiked(c.Context(), middleware.UserID(c), c.Query("object_id"), c.Query("obj_type"))
	if err != nil {
		h.log.Error("check like failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to check like status"})
	}
	return c.JSON(fiber.Map{"has_liked": hasLiked})
}

func (h *LikeHandler) ListByObject(c *fiber.Ctx) error {
	likes, err := h.svc.GetByObject(c.Context(), c.Params("objectId"), c.Params("objType"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidObjectType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error("list likes failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get likes"})
	}
	return c.JSON(fiber.Map{"count": len(likes), "likes": likes})
}
