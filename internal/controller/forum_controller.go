package controller

import (
	"errors"

	"mindwell-be/internal/dto"
	"mindwell-be/internal/pkg/serverutils"
	"mindwell-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IForumController interface {
	RegisterRoutes(r fiber.Router)
}

type forumController struct {
	service service.IForumService
}

func NewForumController(service service.IForumService) IForumController {
	return &forumController{service: service}
}

func (c *forumController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/forum", serverutils.JwtMiddleware)
	h.Post("/posts", c.CreatePost)
	h.Get("/posts", c.ListPosts)
	h.Get("/posts/:id", c.GetPost)
	h.Put("/posts/:id", c.UpdatePost)
	h.Delete("/posts/:id", c.DeletePost)
	h.Post("/posts/:id/like", c.ToggleLike)
	h.Get("/posts/:id/comments", c.ListComments)
	h.Post("/posts/:id/comments", c.CreateComment)
	h.Delete("/comments/:id", c.DeleteComment)
}

func (c *forumController) CreatePost(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreatePost(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Post created", res))
}

func (c *forumController) ListPosts(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var query dto.ListPostsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.ListPosts(ctx.Context(), userId, &query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Posts", res))
}

func (c *forumController) GetPost(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	postId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post id"))
	}

	res, err := c.service.GetPost(ctx.Context(), userId, postId)
	if err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Post", res))
}

func (c *forumController) UpdatePost(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	postId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post id"))
	}

	var req dto.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdatePost(ctx.Context(), userId, postId, &req)
	if err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Post updated", res))
}

func (c *forumController) DeletePost(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	postId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post id"))
	}

	if err := c.service.DeletePost(ctx.Context(), userId, postId); err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Post deleted", nil))
}

func (c *forumController) ToggleLike(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	postId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post id"))
	}

	res, err := c.service.ToggleLike(ctx.Context(), userId, postId)
	if err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Like toggled", res))
}

func (c *forumController) ListComments(ctx *fiber.Ctx) error {
	postId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post id"))
	}

	res, err := c.service.ListComments(ctx.Context(), postId)
	if err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Comments", res))
}

func (c *forumController) CreateComment(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	postId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post id"))
	}

	var req dto.CreateCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateComment(ctx.Context(), userId, postId, &req)
	if err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Comment created", res))
}

func (c *forumController) DeleteComment(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)
	commentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid comment id"))
	}

	if err := c.service.DeleteComment(ctx.Context(), userId, commentId); err != nil {
		return forumErrorResponse(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Comment deleted", nil))
}

func forumErrorResponse(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrPostNotFound), errors.Is(err, service.ErrCommentNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrNotOwner):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
