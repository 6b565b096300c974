package service

import (
	"context"
	"time"

	"realtime-chat-be/internal/config"
	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/repository/contract"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"
	"realtime-chat-be/pkg/events"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateRoom(ctx context.Context, creatorId uuid.UUID, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, userId, roomId uuid.UUID) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.ListRoomsResponse, error)
	JoinRoom(ctx context.Context, userId, roomId uuid.UUID) (*dto.RoomResponse, error)
	LeaveRoom(ctx context.Context, userId, roomId uuid.UUID) error
	UpdateRoom(ctx context.Context, userId, roomId uuid.UUID, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, userId, roomId uuid.UUID) error

	SendMessage(ctx context.Context, senderId, roomId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessages(ctx context.Context, userId, roomId uuid.UUID, query *dto.GetMessagesQuery) (*dto.GetMessagesResponse, error)
	EditMessage(ctx context.Context, userId, messageId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error)
	DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error

	MarkRead(ctx context.Context, userId, roomId uuid.UUID) (*dto.MarkReadResponse, error)
	UnreadCount(ctx context.Context, userId, roomId uuid.UUID) (*dto.UnreadCountResponse, error)
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	policy           config.ChatConfig
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	policy config.ChatConfig,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		policy:           policy,
	}
}

// requireActiveRoom loads a room treating inactive ones as absent.
func (c *chatService) requireActiveRoom(ctx context.Context, rooms contract.RoomRepository, roomId uuid.UUID) (*entity.Room, error) {
	room, err := rooms.FindOne(ctx, specification.ByID{ID: roomId}, specification.ActiveOnly{})
	if err != nil {
		return nil, apperror.Internal("failed to load room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("room not found")
	}
	return room, nil
}

func (c *chatService) requireParticipant(room *entity.Room, userId uuid.UUID) error {
	if !room.HasParticipant(userId) {
		return apperror.Forbidden("user is not a participant of this room")
	}
	return nil
}

func (c *chatService) CreateRoom(ctx context.Context, creatorId uuid.UUID, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	kind := entity.RoomKind(req.Kind)
	if !kind.Valid() {
		return nil, apperror.InvalidInput("unknown room kind")
	}

	participants := entity.DeduplicateParticipants(req.Participants)
	creatorIncluded := false
	for _, id := range participants {
		if id == creatorId {
			creatorIncluded = true
			break
		}
	}
	if !creatorIncluded {
		participants = append(participants, creatorId)
	}

	if err := entity.ValidateCreateParticipants(kind, participants); err != nil {
		return nil, err
	}

	if kind == entity.RoomKindGroup && (req.Name == nil || *req.Name == "") {
		return nil, apperror.InvalidInput("group room requires a name")
	}

	// Every participant must resolve to an existing user.
	found, err := uow.UserRepository().Count(ctx, specification.ByIDs{IDs: participants})
	if err != nil {
		return nil, apperror.Internal("failed to resolve participants", err)
	}
	if int(found) != len(participants) {
		return nil, apperror.Newf(apperror.KindNotFound, "%d participant(s) do not exist", len(participants)-int(found))
	}

	room := &entity.Room{
		Id:           uuid.New(),
		Kind:         kind,
		Description:  req.Description,
		CreatedBy:    creatorId,
		Active:       true,
		Participants: participants,
		CreatedAt:    time.Now(),
	}

	if kind == entity.RoomKindPrivate {
		// The canonical pair key is what the uniqueness index is built on, so
		// both argument orders converge on one room.
		pairKey := entity.PrivatePairKey(participants[0], participants[1])
		room.PairKey = &pairKey

		existing, err := uow.RoomRepository().FindOne(ctx,
			specification.ByKind{Kind: string(entity.RoomKindPrivate)},
			specification.ByPairKey{PairKey: pairKey},
			specification.ActiveOnly{},
		)
		if err != nil {
			return nil, apperror.Internal("failed to look up private room", err)
		}
		if existing != nil {
			return c.buildRoomResponse(ctx, uow, existing, creatorId)
		}
	} else {
		room.Name = req.Name
	}

	if err := uow.RoomRepository().Create(ctx, room); err != nil {
		// Lost the race against a concurrent create for the same pair: the
		// unique index rejected the insert, so the winner's room is fetched.
		if kind == entity.RoomKindPrivate && apperror.Is(err, apperror.KindInvalidOperation) {
			winner, ferr := uow.RoomRepository().FindOne(ctx,
				specification.ByKind{Kind: string(entity.RoomKindPrivate)},
				specification.ByPairKey{PairKey: *room.PairKey},
				specification.ActiveOnly{},
			)
			if ferr == nil && winner != nil {
				return c.buildRoomResponse(ctx, uow, winner, creatorId)
			}
		}
		return nil, apperror.Internal("failed to create room", err)
	}

	c.publisherService.Publish(ctx, events.NewRoomCreatedEvent(room))

	return c.buildRoomResponse(ctx, uow, room, creatorId)
}

func (c *chatService) GetRoom(ctx context.Context, userId, roomId uuid.UUID) (*dto.RoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return nil, err
	}
	if err := c.requireParticipant(room, userId); err != nil {
		return nil, err
	}

	return c.buildRoomResponse(ctx, uow, room, userId)
}

func (c *chatService) ListRooms(ctx context.Context, userId uuid.UUID, page, limit int) (*dto.ListRoomsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = c.policy.DefaultPageSize
	}
	if limit > c.policy.MaxPageSize {
		limit = c.policy.MaxPageSize
	}

	memberOf := []specification.Specification{
		specification.ActiveOnly{},
		specification.HasParticipant{UserID: userId},
	}

	total, err := uow.RoomRepository().Count(ctx, memberOf...)
	if err != nil {
		return nil, apperror.Internal("failed to count rooms", err)
	}

	rooms, err := uow.RoomRepository().FindAll(ctx, append(memberOf,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)...)
	if err != nil {
		return nil, apperror.Internal("failed to list rooms", err)
	}

	result := make([]*dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		res, err := c.buildRoomResponse(ctx, uow, room, userId)
		if err != nil {
			return nil, err
		}
		result = append(result, res)
	}

	return &dto.ListRoomsResponse{
		Rooms: result,
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}

func (c *chatService) JoinRoom(ctx context.Context, userId, roomId uuid.UUID) (*dto.RoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Loaded without the active filter: a join against a deactivated room is
	// an invalid operation, not a missing room.
	room, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return nil, apperror.Internal("failed to load room", err)
	}
	if room == nil {
		return nil, apperror.NotFound("room not found")
	}
	if !room.Active {
		return nil, entity.CanAddParticipant(room)
	}

	// Idempotent: joining a room you are already in returns current state.
	if room.HasParticipant(userId) {
		return c.buildRoomResponse(ctx, uow, room, userId)
	}

	if err := entity.CanAddParticipant(room); err != nil {
		return nil, err
	}

	exists, err := uow.UserRepository().Count(ctx, specification.ByIDs{IDs: []uuid.UUID{userId}})
	if err != nil {
		return nil, apperror.Internal("failed to resolve user", err)
	}
	if exists == 0 {
		return nil, apperror.NotFound("user not found")
	}

	if err := uow.RoomRepository().AddParticipant(ctx, roomId, userId); err != nil {
		return nil, apperror.Internal("failed to join room", err)
	}
	room.Participants = append(room.Participants, userId)

	return c.buildRoomResponse(ctx, uow, room, userId)
}

func (c *chatService) LeaveRoom(ctx context.Context, userId, roomId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return err
	}

	if err := entity.CanRemoveParticipant(room, userId); err != nil {
		return err
	}

	if err := uow.RoomRepository().RemoveParticipant(ctx, roomId, userId); err != nil {
		return apperror.Internal("failed to leave room", err)
	}

	remaining, err := uow.RoomRepository().CountParticipants(ctx, roomId)
	if err != nil {
		return apperror.Internal("failed to count participants", err)
	}
	if entity.RoomBecomesInactive(int(remaining)) {
		if err := uow.RoomRepository().Deactivate(ctx, roomId); err != nil {
			return apperror.Internal("failed to deactivate empty room", err)
		}
	}

	return nil
}

func (c *chatService) UpdateRoom(ctx context.Context, userId, roomId uuid.UUID, req *dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return nil, err
	}

	if room.Kind == entity.RoomKindPrivate {
		return nil, apperror.InvalidOperation("private rooms have no mutable display fields")
	}
	if room.CreatedBy != userId {
		return nil, apperror.Forbidden("only the room creator may update it")
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperror.InvalidInput("group room name cannot be empty")
		}
		fields["name"] = *req.Name
		room.Name = req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		room.Description = req.Description
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
		room.AvatarURL = req.AvatarURL
	}

	if len(fields) > 0 {
		if err := uow.RoomRepository().UpdateFields(ctx, roomId, fields); err != nil {
			return nil, apperror.Internal("failed to update room", err)
		}
	}

	return c.buildRoomResponse(ctx, uow, room, userId)
}

func (c *chatService) DeleteRoom(ctx context.Context, userId, roomId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return err
	}
	if room.CreatedBy != userId {
		return apperror.Forbidden("only the room creator may delete it")
	}

	// Soft delete: the row stays, every listing and message path filters it out.
	if err := uow.RoomRepository().Deactivate(ctx, roomId); err != nil {
		return apperror.Internal("failed to delete room", err)
	}

	c.publisherService.Publish(ctx, events.NewRoomDeletedEvent(room, userId))
	return nil
}

func (c *chatService) SendMessage(ctx context.Context, senderId, roomId uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return nil, err
	}
	if err := c.requireParticipant(room, senderId); err != nil {
		return nil, err
	}

	if req.Content == "" {
		return nil, apperror.InvalidInput("message content is required")
	}
	if len(req.Content) > entity.MaxMessageContentLength {
		return nil, apperror.InvalidInput("message content exceeds the size limit")
	}

	kind := entity.MessageKindText
	if req.Kind != "" {
		kind = entity.MessageKind(req.Kind)
		if !kind.Valid() {
			return nil, apperror.InvalidInput("unknown message type")
		}
	}

	var replyPreview *dto.ReplyPreview
	if req.ReplyTo != nil {
		// The replied-to message must live in the same room.
		parent, err := uow.MessageRepository().FindOne(ctx,
			specification.ByID{ID: *req.ReplyTo},
			specification.ByRoomID{RoomID: roomId},
		)
		if err != nil {
			return nil, apperror.Internal("failed to resolve reply target", err)
		}
		if parent == nil {
			return nil, apperror.NotFound("replied-to message not found in this room")
		}
		parentSender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: parent.SenderId})
		if err != nil {
			return nil, apperror.Internal("failed to resolve reply sender", err)
		}
		name := ""
		if parentSender != nil {
			name = parentSender.DisplayName
		}
		replyPreview = &dto.ReplyPreview{
			Id:         parent.Id,
			Content:    parent.Content,
			SenderId:   parent.SenderId,
			SenderName: name,
		}
	}

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: senderId})
	if err != nil {
		return nil, apperror.Internal("failed to resolve sender", err)
	}
	if sender == nil {
		return nil, apperror.NotFound("sender not found")
	}

	message := &entity.Message{
		Id:        uuid.New(),
		RoomId:    roomId,
		SenderId:  senderId,
		Content:   req.Content,
		Kind:      kind,
		Status:    entity.MessageStatusSent,
		ReplyToId: req.ReplyTo,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	// Message first, preview second: the summary must never point at a
	// message that is not durably stored yet.
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, apperror.Internal("failed to store message", err)
	}
	if err := uow.RoomRepository().SetLastMessage(ctx, roomId, message.Preview(sender.DisplayName)); err != nil {
		return nil, apperror.Internal("failed to update room preview", err)
	}

	c.publisherService.Publish(ctx, events.NewMessageCreatedEvent(message, room))

	return c.buildMessageResponse(message, sender, replyPreview), nil
}

func (c *chatService) GetMessages(ctx context.Context, userId, roomId uuid.UUID, query *dto.GetMessagesQuery) (*dto.GetMessagesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return nil, err
	}
	if err := c.requireParticipant(room, userId); err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = c.policy.DefaultPageSize
	}
	if limit > c.policy.MaxPageSize {
		limit = c.policy.MaxPageSize
	}

	specs := []specification.Specification{
		specification.ByRoomID{RoomID: roomId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}

	if query.Before != nil {
		anchor, err := uow.MessageRepository().FindOne(ctx,
			specification.ByID{ID: *query.Before},
			specification.ByRoomID{RoomID: roomId},
		)
		if err != nil {
			return nil, apperror.Internal("failed to resolve cursor", err)
		}
		if anchor == nil {
			return nil, apperror.NotFound("cursor message not found in this room")
		}
		// Cursor overrides offset semantics.
		specs = append(specs,
			specification.CreatedBefore{Before: anchor.CreatedAt},
			specification.Pagination{Limit: limit, Offset: 0},
		)
	} else {
		specs = append(specs, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})
	}

	// Fetched newest-first for limit efficiency, reversed below so clients
	// render oldest-first.
	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal("failed to load messages", err)
	}

	senders, err := c.resolveSenders(ctx, uow, messages)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		result = append(result, c.buildMessageResponse(msg, senders[msg.SenderId], nil))
	}

	return &dto.GetMessagesResponse{
		Messages: result,
		Page:     page,
		Limit:    limit,
		HasMore:  len(messages) == limit,
	}, nil
}

func (c *chatService) EditMessage(ctx context.Context, userId, messageId uuid.UUID, req *dto.EditMessageRequest) (*dto.MessageResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return nil, apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return nil, apperror.NotFound("message not found")
	}
	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), message.RoomId)
	if err != nil {
		return nil, err
	}
	if message.SenderId != userId {
		return nil, apperror.Forbidden("only the sender may edit a message")
	}
	if time.Since(message.CreatedAt) > c.policy.EditWindow {
		return nil, apperror.InvalidOperation("message is too old to edit")
	}
	if req.Content == "" || len(req.Content) > entity.MaxMessageContentLength {
		return nil, apperror.InvalidInput("invalid message content")
	}

	now := time.Now()
	message.Content = req.Content
	message.Edited = true
	message.EditedAt = &now

	if err := uow.MessageRepository().Update(ctx, message); err != nil {
		return nil, apperror.Internal("failed to update message", err)
	}

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("failed to resolve sender", err)
	}

	// Keep the room preview honest when the latest message is the edited one.
	if room.LastMessage != nil && room.LastMessage.MessageId == message.Id {
		name := ""
		if sender != nil {
			name = sender.DisplayName
		}
		if err := uow.RoomRepository().SetLastMessage(ctx, room.Id, message.Preview(name)); err != nil {
			return nil, apperror.Internal("failed to update room preview", err)
		}
	}

	return c.buildMessageResponse(message, sender, nil), nil
}

func (c *chatService) DeleteMessage(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return apperror.Internal("failed to load message", err)
	}
	if message == nil {
		return apperror.NotFound("message not found")
	}
	if _, err := c.requireActiveRoom(ctx, uow.RoomRepository(), message.RoomId); err != nil {
		return err
	}
	if message.SenderId != userId {
		return apperror.Forbidden("only the sender may delete a message")
	}
	if time.Since(message.CreatedAt) > c.policy.DeleteWindow {
		return apperror.InvalidOperation("message is too old to delete")
	}

	if err := uow.MessageRepository().Delete(ctx, messageId); err != nil {
		return apperror.Internal("failed to delete message", err)
	}
	return nil
}

func (c *chatService) MarkRead(ctx context.Context, userId, roomId uuid.UUID) (*dto.MarkReadResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return nil, err
	}
	if err := c.requireParticipant(room, userId); err != nil {
		return nil, err
	}

	marked, err := uow.MessageRepository().MarkRoomRead(ctx, roomId, userId, time.Now())
	if err != nil {
		return nil, apperror.Internal("failed to mark room read", err)
	}

	return &dto.MarkReadResponse{RoomId: roomId, Marked: marked}, nil
}

func (c *chatService) UnreadCount(ctx context.Context, userId, roomId uuid.UUID) (*dto.UnreadCountResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	room, err := c.requireActiveRoom(ctx, uow.RoomRepository(), roomId)
	if err != nil {
		return nil, err
	}
	if err := c.requireParticipant(room, userId); err != nil {
		return nil, err
	}

	count, err := uow.MessageRepository().UnreadCount(ctx, roomId, userId)
	if err != nil {
		return nil, apperror.Internal("failed to count unread messages", err)
	}

	return &dto.UnreadCountResponse{RoomId: roomId, Count: count}, nil
}

// Response assembly

func (c *chatService) resolveSenders(ctx context.Context, uow unitofwork.UnitOfWork, messages []*entity.Message) (map[uuid.UUID]*entity.User, error) {
	ids := make([]uuid.UUID, 0, len(messages))
	seen := make(map[uuid.UUID]struct{}, len(messages))
	for _, m := range messages {
		if _, ok := seen[m.SenderId]; ok {
			continue
		}
		seen[m.SenderId] = struct{}{}
		ids = append(ids, m.SenderId)
	}

	result := make(map[uuid.UUID]*entity.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, apperror.Internal("failed to resolve senders", err)
	}
	for _, u := range users {
		result[u.Id] = u
	}
	return result, nil
}

func (c *chatService) buildMessageResponse(msg *entity.Message, sender *entity.User, reply *dto.ReplyPreview) *dto.MessageResponse {
	senderRes := dto.SenderResponse{Id: msg.SenderId}
	if sender != nil {
		senderRes.DisplayName = sender.DisplayName
		senderRes.AvatarURL = sender.AvatarURL
	}

	readBy := msg.ReadBy
	if readBy == nil {
		readBy = []entity.ReadReceipt{}
	}

	return &dto.MessageResponse{
		Id:        msg.Id,
		RoomId:    msg.RoomId,
		Sender:    senderRes,
		Content:   msg.Content,
		Kind:      string(msg.Kind),
		Status:    string(msg.Status),
		Edited:    msg.Edited,
		EditedAt:  msg.EditedAt,
		ReplyTo:   reply,
		Metadata:  msg.Metadata,
		ReadBy:    readBy,
		CreatedAt: msg.CreatedAt,
	}
}

func (c *chatService) buildRoomResponse(ctx context.Context, uow unitofwork.UnitOfWork, room *entity.Room, viewerId uuid.UUID) (*dto.RoomResponse, error) {
	participants := make([]dto.ParticipantResponse, 0, len(room.Participants))
	if len(room.Participants) > 0 {
		users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: room.Participants})
		if err != nil {
			return nil, apperror.Internal("failed to resolve participants", err)
		}
		for _, u := range users {
			participants = append(participants, dto.ParticipantResponse{
				Id:          u.Id,
				DisplayName: u.DisplayName,
				AvatarURL:   u.AvatarURL,
				IsOnline:    u.IsOnline,
			})
		}
	}

	unread, err := uow.MessageRepository().UnreadCount(ctx, room.Id, viewerId)
	if err != nil {
		return nil, apperror.Internal("failed to count unread messages", err)
	}

	return &dto.RoomResponse{
		Id:           room.Id,
		Kind:         string(room.Kind),
		Name:         room.Name,
		Description:  room.Description,
		AvatarURL:    room.AvatarURL,
		CreatedBy:    room.CreatedBy,
		Active:       room.Active,
		Participants: participants,
		LastMessage:  room.LastMessage,
		UnreadCount:  unread,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}, nil
}
