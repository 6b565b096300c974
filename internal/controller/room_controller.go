package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/pkg/serverutils"
	"realtime-chat-be/internal/service"
)

type IRoomController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Join(ctx *fiber.Ctx) error
	Leave(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	UnreadCount(ctx *fiber.Ctx) error
}

type roomController struct {
	chatService service.IChatService
}

func NewRoomController(chatService service.IChatService) IRoomController {
	return &roomController{
		chatService: chatService,
	}
}

func (c *roomController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/room/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Post(":id/join", c.Join)
	h.Post(":id/leave", c.Leave)
	h.Post(":id/read", c.MarkRead)
	h.Get(":id/unread", c.UnreadCount)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateRoom(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create room", res))
}

func (c *roomController) List(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 0)

	res, err := c.chatService.ListRooms(ctx.Context(), userId, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list rooms", res))
}

func (c *roomController) Show(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.GetRoom(ctx.Context(), userId, roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get room", res))
}

func (c *roomController) Update(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidInput("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.UpdateRoom(ctx.Context(), userId, roomId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update room", res))
}

func (c *roomController) Delete(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.chatService.DeleteRoom(ctx.Context(), userId, roomId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[interface{}]("Success delete room", nil))
}

func (c *roomController) Join(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.JoinRoom(ctx.Context(), userId, roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success join room", res))
}

func (c *roomController) Leave(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.chatService.LeaveRoom(ctx.Context(), userId, roomId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[interface{}]("Success leave room", nil))
}

func (c *roomController) MarkRead(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.MarkRead(ctx.Context(), userId, roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark room read", res))
}

func (c *roomController) UnreadCount(ctx *fiber.Ctx) error {
	userId := authUserId(ctx)

	roomId, err := pathId(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.UnreadCount(ctx.Context(), userId, roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get unread count", res))
}

// authUserId pulls the authenticated user out of the request locals set by the
// JWT middleware.
func authUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func pathId(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Newf(apperror.KindInvalidInput, "invalid %s", name)
	}
	return id, nil
}
