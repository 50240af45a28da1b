package controller

import (
	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/pkg/serverutils"
	"course-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *courseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.courseService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create course", res))
}

func (c *courseController) List(ctx *fiber.Ctx) error {
	res, err := c.courseService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list courses", res))
}

func (c *courseController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course id")
	}

	if err := c.courseService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete course", nil))
}
