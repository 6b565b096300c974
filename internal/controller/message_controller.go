package controller

import (
	"github.com/gofiber/fiber/v2"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/pkg/serverutils"
	"realtime-chat-be/internal/service"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type messageController struct {
	chatService service.IChatService
}

func NewMessageController(chatService service.IChatService) IMessageController {
	return &messageController{
		chatService: chatService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("room/:roomId", c.Send)
	h.Get("room/:roomId", c.History)
	h.Put(":id", c.Edit)
	h.Delete(":id", c.Delete)
}

func (c *messageController) Send(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "roomId")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), userId, roomId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *messageController) History(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "roomId")
	if err != nil {
		return err
	}

	var query dto.GetMessagesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.InvalidInput("malformed query parameters")
	}

	res, err := c.chatService.GetMessages(ctx.Context(), userId, roomId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *messageController) Edit(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	messageId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.EditMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.EditMessage(ctx.Context(), userId, messageId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit message", res))
}

func (c *messageController) Delete(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	messageId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteMessage(ctx.Context(), userId, messageId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[interface{}]("Success delete message", nil))
}
