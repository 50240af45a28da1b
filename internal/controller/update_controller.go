package controller

import (
	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/pkg/serverutils"
	"course-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUpdateController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	SuggestCategory(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type updateController struct {
	updateService service.IUpdateService
}

func NewUpdateController(updateService service.IUpdateService) IUpdateController {
	return &updateController{
		updateService: updateService,
	}
}

func (c *updateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/update/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Post("suggest-category", c.SuggestCategory)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *updateController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.updateService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success publish update", res))
}

func (c *updateController) SuggestCategory(ctx *fiber.Ctx) error {
	var req dto.SuggestCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.updateService.SuggestCategory(ctx.Context(), req.Content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success suggest category", res))
}

func (c *updateController) List(ctx *fiber.Ctx) error {
	course := ctx.Query("course")
	cycle := ctx.Query("cycle")
	section := ctx.Query("section")
	category := ctx.Query("category")

	res, err := c.updateService.List(ctx.Context(), course, cycle, section, category)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list updates", res))
}

func (c *updateController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid update id")
	}

	if err := c.updateService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete update", nil))
}
