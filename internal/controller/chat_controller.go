package controller

import (
	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/pkg/serverutils"
	"course-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	dialogService service.IDialogService
}

func NewChatController(dialogService service.IDialogService) IChatController {
	return &chatController{
		dialogService: dialogService,
	}
}

// Students talk to the assistant here; no auth, the user id comes from the
// messaging channel that fronts this API.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("message", c.SendMessage)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.dialogService.HandleMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process message", res))
}
