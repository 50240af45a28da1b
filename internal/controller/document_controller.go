package controller

import (
	"io"

	"course-copilot-be/internal/dto"
	"course-copilot-be/internal/pkg/serverutils"
	"course-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	ListStored(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Get("storage", c.ListStored)
	h.Get(":id/download", c.Download)
	h.Get(":id", c.Show)
	h.Post(":id/reindex", c.Reindex)
	h.Delete(":id", c.Delete)
}

// Upload takes a multipart form: the file plus the scope fields that place
// it in the catalog.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	req := dto.UploadDocumentRequest{
		Course:   ctx.FormValue("course"),
		Cycle:    ctx.FormValue("cycle"),
		Module:   ctx.FormValue("module"),
		Section:  ctx.FormValue("section"),
		FileName: fileHeader.Filename,
		Data:     data,
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Upload(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	res, err := c.documentService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Download(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	res, err := c.documentService.Download(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	ctx.Set(fiber.HeaderContentType, res.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.FileName+`"`)
	return ctx.Send(res.Data)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	course := ctx.Query("course")
	cycle := ctx.Query("cycle")
	section := ctx.Query("section")

	res, err := c.documentService.List(ctx.Context(), course, cycle, section)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

// ListStored surfaces the raw bucket contents for a scope so staff can
// reconcile storage against the document records.
func (c *documentController) ListStored(ctx *fiber.Ctx) error {
	course := ctx.Query("course")
	cycle := ctx.Query("cycle")
	module := ctx.Query("module")
	section := ctx.Query("section")
	if course == "" || cycle == "" || module == "" || section == "" {
		return fiber.NewError(fiber.StatusBadRequest, "course, cycle, module and section are required")
	}

	res, err := c.documentService.ListStored(ctx.Context(), course, cycle, module, section)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list stored files", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) Reindex(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document id")
	}

	if err := c.documentService.Reindex(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success queue reindex", nil))
}
