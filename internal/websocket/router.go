package websocket

import (
	"context"
	"time"

	"realtime-chat-be/internal/dto"
	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/pkg/logger"
	"realtime-chat-be/internal/pkg/ratelimit"
	"realtime-chat-be/internal/service"
)

// Router dispatches decoded inbound events to the chat services and fans the
// results back out through the hub. Every inbound event passes admission
// control first; repeated violations force a disconnect.
type Router struct {
	hub      *Hub
	chat     service.IChatService
	presence service.IPresenceService
	limiter  *ratelimit.Limiter
	logger   logger.ILogger
}

func NewRouter(hub *Hub, chat service.IChatService, presence service.IPresenceService, limiter *ratelimit.Limiter, log logger.ILogger) *Router {
	return &Router{
		hub:      hub,
		chat:     chat,
		presence: presence,
		limiter:  limiter,
		logger:   log,
	}
}

// HandleConnect registers the session and, when it is the user's first live
// connection, announces the transition to online.
func (r *Router) HandleConnect(client *Client) {
	cameOnline, err := r.presence.SessionConnected(context.Background(), client.UserID)
	if err != nil {
		r.logger.Error("Router", "Presence connect failed", map[string]interface{}{
			"user_id": client.UserID,
			"error":   err.Error(),
		})
		return
	}
	if cameOnline {
		r.hub.Broadcast(EventUserStatusChanged, StatusChangedPayload{
			UserId:    client.UserID,
			Username:  client.Username,
			Status:    string(entity.PresenceOnline),
			Timestamp: time.Now().UTC(),
		})
	}
}

// HandleDisconnect runs the teardown bookkeeping for one closed connection.
// Room subscriptions die with the hub unregister; persistent membership is
// untouched.
func (r *Router) HandleDisconnect(client *Client) {
	r.limiter.Clear(ratelimit.ScopeConnection, client.Id)

	wentOffline, err := r.presence.SessionDisconnected(context.Background(), client.UserID)
	if err != nil {
		r.logger.Error("Router", "Presence disconnect failed", map[string]interface{}{
			"user_id": client.UserID,
			"error":   err.Error(),
		})
		return
	}
	if wentOffline {
		r.limiter.Clear(ratelimit.ScopeUser, client.UserID.String())
		r.hub.Broadcast(EventUserStatusChanged, StatusChangedPayload{
			UserId:    client.UserID,
			Username:  client.Username,
			Status:    string(entity.PresenceOffline),
			Timestamp: time.Now().UTC(),
		})
	}
}

// HandleEvent processes one raw frame. The return value tells the read pump
// whether to keep the connection: false means admission control demanded a
// forced disconnect.
func (r *Router) HandleEvent(client *Client, raw []byte) (keep bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Router", "Recovered panic in event handler", map[string]interface{}{
				"user_id": client.UserID,
				"panic":   rec,
			})
			r.sendError(client, apperror.New(apperror.KindInternal, "internal server error"))
			keep = true
		}
	}()

	evt, err := DecodeInbound(raw)
	if err != nil {
		r.sendError(client, err)
		return true
	}

	switch r.admit(client, evt.Name) {
	case ratelimit.Denied:
		r.sendError(client, apperror.Newf(apperror.KindRateLimited, "rate limit exceeded for %s", evt.Name))
		return true
	case ratelimit.Terminate:
		r.logger.Warn("Router", "Forcing disconnect after repeated rate violations", map[string]interface{}{
			"user_id": client.UserID,
			"event":   evt.Name,
		})
		r.sendError(client, apperror.New(apperror.KindRateLimited, "too many rate limit violations, disconnecting"))
		return false
	}

	ctx := context.Background()

	switch evt.Name {
	case EventJoinRoom:
		err = r.handleJoinRoom(ctx, client, evt.JoinRoom)
	case EventLeaveRoom:
		err = r.handleLeaveRoom(ctx, client, evt.LeaveRoom)
	case EventSendMessage:
		err = r.handleSendMessage(ctx, client, evt.SendMessage)
	case EventTyping:
		err = r.handleTyping(ctx, client, evt.Typing)
	case EventMessageRead:
		err = r.handleMessageRead(ctx, client, evt.MessageRead)
	case EventUpdateStatus:
		err = r.handleUpdateStatus(ctx, client, evt.UpdateStatus)
	}

	if err != nil {
		r.sendError(client, err)
	}
	return true
}

// admit checks both counter scopes. The stricter decision wins so that one
// abusive device cannot hide behind the per-user budget and vice versa.
func (r *Router) admit(client *Client, event string) ratelimit.Decision {
	connDecision := r.limiter.Allow(ratelimit.ScopeConnection, client.Id, event)
	userDecision := r.limiter.Allow(ratelimit.ScopeUser, client.UserID.String(), event)
	if connDecision > userDecision {
		return connDecision
	}
	return userDecision
}

func (r *Router) handleJoinRoom(ctx context.Context, client *Client, p *JoinRoomPayload) error {
	// Authorization: caller must be an active participant.
	if _, err := r.chat.GetRoom(ctx, client.UserID, p.RoomId); err != nil {
		return err
	}

	r.hub.Subscribe(client, p.RoomId)

	client.SendEvent(EventRoomJoined, RoomAckPayload{
		RoomId:  p.RoomId,
		Message: "subscribed to room",
	})
	r.hub.BroadcastToRoom(p.RoomId, EventUserJoined, UserRoomPayload{
		UserId:    client.UserID,
		Username:  client.Username,
		Timestamp: time.Now().UTC(),
	}, &client.UserID)
	return nil
}

// handleLeaveRoom detaches the live subscription only. Leaving the room's
// member list is a REST operation.
func (r *Router) handleLeaveRoom(ctx context.Context, client *Client, p *LeaveRoomPayload) error {
	if !r.hub.IsSubscribed(client, p.RoomId) {
		return apperror.NotFound("not subscribed to this room")
	}

	r.hub.Unsubscribe(client, p.RoomId)

	client.SendEvent(EventRoomLeft, RoomAckPayload{
		RoomId:  p.RoomId,
		Message: "unsubscribed from room",
	})
	r.hub.BroadcastToRoom(p.RoomId, EventUserLeft, UserRoomPayload{
		UserId:    client.UserID,
		Username:  client.Username,
		Timestamp: time.Now().UTC(),
	}, &client.UserID)
	return nil
}

func (r *Router) handleSendMessage(ctx context.Context, client *Client, p *SendMessagePayload) error {
	msg, err := r.chat.SendMessage(ctx, client.UserID, p.RoomId, &dto.SendMessageRequest{
		Content:  p.Content,
		Kind:     p.Kind,
		ReplyTo:  p.ReplyTo,
		Metadata: p.Metadata,
	})
	if err != nil {
		return err
	}

	// Every subscribed connection gets the message, the sender's own
	// sessions included, so all devices converge.
	r.hub.BroadcastToRoom(p.RoomId, EventNewMessage, NewMessagePayload{
		Message:   msg,
		Timestamp: time.Now().UTC(),
	}, nil)
	return nil
}

func (r *Router) handleTyping(ctx context.Context, client *Client, p *TypingPayload) error {
	if _, err := r.chat.GetRoom(ctx, client.UserID, p.RoomId); err != nil {
		return err
	}

	r.hub.BroadcastToRoom(p.RoomId, EventUserTyping, UserTypingPayload{
		UserId:    client.UserID,
		Username:  client.Username,
		IsTyping:  *p.IsTyping,
		Timestamp: time.Now().UTC(),
	}, &client.UserID)
	return nil
}

func (r *Router) handleMessageRead(ctx context.Context, client *Client, p *MessageReadPayload) error {
	if _, err := r.chat.MarkRead(ctx, client.UserID, p.RoomId); err != nil {
		return err
	}

	r.hub.BroadcastToRoom(p.RoomId, EventMessageReadOut, MessageReadOutPayload{
		MessageId: p.MessageId,
		UserId:    client.UserID,
		Username:  client.Username,
		ReadAt:    time.Now().UTC(),
	}, nil)
	return nil
}

func (r *Router) handleUpdateStatus(ctx context.Context, client *Client, p *UpdateStatusPayload) error {
	status := entity.PresenceStatus(p.Status)
	if err := r.presence.UpdateStatus(ctx, client.UserID, status); err != nil {
		return err
	}

	r.hub.Broadcast(EventUserStatusChanged, StatusChangedPayload{
		UserId:    client.UserID,
		Username:  client.Username,
		Status:    p.Status,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// sendError reports a failure to the originating connection only.
func (r *Router) sendError(client *Client, err error) {
	client.SendEvent(EventError, ErrorPayload{Message: err.Error()})
}
