package routes

import (
	"github.com/fathima-sithara/social-service/internal/handlers"
	"github.com/fathima-sithara/social-service/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything Setup needs to wire the route tree.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Post    *handlers.PostHandler
	Comment *handlers.CommentHandler
	Like    *handlers.LikeHandler
	User    *handlers.UserHandler
	Media   *handlers.MediaHandler
}

func Setup(app *fiber.App, h Handlers, gate fiber.Handler, limiter *middleware.RateLimiter) {
	auth := app.Group("/auth")
	auth.Post("/register", limiter.ByIP(), h.Auth.Register)
	auth.Post("/login", limiter.ByIP(), h.Auth.Login)
	auth.Post("/google", limiter.ByIP(), h.Auth.GoogleLogin)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout)

	posts := app.Group("/posts")
	posts.Get("/", h.Post.List)
	posts.Get("/:id", h.Post.GetByID)
	posts.Post("/", gate, h.Post.Create)
	posts.Put("/:id", gate, h.Post.Update)
	posts.Delete("/:id", gate, h.Post.Delete)

	comments := app.Group("/comments")
	comments.Get("/", h.Comment.List)
	comments.Get("/post/:id", h.Comment.ListByPost)
	comments.Get("/:id", h.Comment.GetByID)
	comments.Post("/", gate, h.Comment.Create)
	comments.Put("/:id", gate, h.Comment.Update)
	comments.Delete("/:id", gate, h.Comment.Delete)

	likes := app.Group("/likes")
	likes.Post("/", gate, h.Like.Add)
	likes.Delete("/", gate, h.Like.Remove)
	likes.Get("/check", gate, h.Like.Check)
	likes.Get("/:objType/:objectId", h.Like.ListByObject)

	users := app.Group("/users")
	users.Get("/", h.User.List)
	users.Get("/:username", h.User.GetByUsername)
	users.Put("/:username", gate, h.User.UpdateEmail)
	users.Delete("/:username", gate, h.User.Delete)

	storage := app.Group("/storage")
	storage.Post("/", gate, h.Media.Upload)
	storage.Get("/:id/url", h.Media.GetURL)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
}
