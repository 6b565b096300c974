package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/repository/contract"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"
	"realtime-chat-be/pkg/events"
)

// In-memory repository doubles that interpret the same specifications the
// gorm implementations do, so service tests exercise the real query shapes.

type memoryStore struct {
	users    map[uuid.UUID]*entity.User
	rooms    map[uuid.UUID]*entity.Room
	messages map[uuid.UUID]*entity.Message
	reads    map[uuid.UUID]map[uuid.UUID]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[uuid.UUID]*entity.User),
		rooms:    make(map[uuid.UUID]*entity.Room),
		messages: make(map[uuid.UUID]*entity.Message),
		reads:    make(map[uuid.UUID]map[uuid.UUID]time.Time),
	}
}

func (s *memoryStore) addUser(name string) *entity.User {
	u := &entity.User{Id: uuid.New(), Email: name + "@example.com", DisplayName: name}
	s.users[u.Id] = u
	return u
}

// fakeUserRepo

type fakeUserRepo struct{ store *memoryStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		if userMatches(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, _ := r.FindAll(ctx, specs...)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) IncrementSessionCount(ctx context.Context, userId uuid.UUID, delta int) (int, error) {
	u, ok := r.store.users[userId]
	if !ok {
		return 0, apperror.NotFound("user not found")
	}
	u.ActiveSessionCount += delta
	if u.ActiveSessionCount < 0 {
		u.ActiveSessionCount = 0
	}
	return u.ActiveSessionCount, nil
}

func (r *fakeUserRepo) UpdatePresence(ctx context.Context, userId uuid.UUID, status entity.PresenceStatus, lastSeen time.Time) error {
	u, ok := r.store.users[userId]
	if !ok {
		return apperror.NotFound("user not found")
	}
	u.Status = status
	u.IsOnline = status != entity.PresenceOffline
	u.LastSeen = lastSeen
	return nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByIDs:
			if !containsId(sp.IDs, u.Id) {
				return false
			}
		}
	}
	return true
}

// fakeRoomRepo

type fakeRoomRepo struct{ store *memoryStore }

func (r *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	if room.PairKey != nil {
		for _, existing := range r.store.rooms {
			if existing.Active && existing.PairKey != nil && *existing.PairKey == *room.PairKey {
				return apperror.InvalidOperation("room already exists for this pair")
			}
		}
	}
	r.store.rooms[room.Id] = room
	return nil
}

func (r *fakeRoomRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error) {
	for _, room := range r.store.rooms {
		if roomMatches(room, specs) {
			return room, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	var out []*entity.Room
	for _, room := range r.store.rooms {
		if roomMatches(room, specs) {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return paginate(out, specs), nil
}

func (r *fakeRoomRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	n := int64(0)
	for _, room := range r.store.rooms {
		if roomMatches(room, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRoomRepo) AddParticipant(ctx context.Context, roomId, userId uuid.UUID) error {
	room := r.store.rooms[roomId]
	if room == nil {
		return apperror.NotFound("room not found")
	}
	if !room.HasParticipant(userId) {
		room.Participants = append(room.Participants, userId)
	}
	return nil
}

func (r *fakeRoomRepo) RemoveParticipant(ctx context.Context, roomId, userId uuid.UUID) error {
	room := r.store.rooms[roomId]
	if room == nil {
		return apperror.NotFound("room not found")
	}
	for i, id := range room.Participants {
		if id == userId {
			room.Participants = append(room.Participants[:i], room.Participants[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRoomRepo) CountParticipants(ctx context.Context, roomId uuid.UUID) (int64, error) {
	room := r.store.rooms[roomId]
	if room == nil {
		return 0, apperror.NotFound("room not found")
	}
	return int64(len(room.Participants)), nil
}

func (r *fakeRoomRepo) UpdateFields(ctx context.Context, roomId uuid.UUID, fields map[string]interface{}) error {
	room := r.store.rooms[roomId]
	if room == nil {
		return apperror.NotFound("room not found")
	}
	if v, ok := fields["name"].(string); ok {
		room.Name = &v
	}
	if v, ok := fields["description"].(string); ok {
		room.Description = &v
	}
	if v, ok := fields["avatar_url"].(string); ok {
		room.AvatarURL = &v
	}
	room.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRoomRepo) SetLastMessage(ctx context.Context, roomId uuid.UUID, preview *entity.LastMessagePreview) error {
	room := r.store.rooms[roomId]
	if room == nil {
		return apperror.NotFound("room not found")
	}
	room.LastMessage = preview
	room.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRoomRepo) Deactivate(ctx context.Context, roomId uuid.UUID) error {
	room := r.store.rooms[roomId]
	if room == nil {
		return apperror.NotFound("room not found")
	}
	room.Active = false
	return nil
}

func roomMatches(room *entity.Room, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if room.Id != sp.ID {
				return false
			}
		case specification.ActiveOnly:
			if !room.Active {
				return false
			}
		case specification.ByKind:
			if string(room.Kind) != sp.Kind {
				return false
			}
		case specification.ByPairKey:
			if room.PairKey == nil || *room.PairKey != sp.PairKey {
				return false
			}
		case specification.HasParticipant:
			if !room.HasParticipant(sp.UserID) {
				return false
			}
		}
	}
	return true
}

// fakeMessageRepo

type fakeMessageRepo struct{ store *memoryStore }

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.messages[message.Id] = message
	return nil
}

func (r *fakeMessageRepo) Update(ctx context.Context, message *entity.Message) error {
	r.store.messages[message.Id] = message
	return nil
}

func (r *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.messages, id)
	delete(r.store.reads, id)
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.store.messages {
		if messageMatches(m, specs) {
			out = append(out, m)
		}
	}
	desc := false
	for _, s := range specs {
		if ob, ok := s.(specification.OrderBy); ok && ob.Desc {
			desc = true
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return paginate(out, specs), nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	msgs, _ := r.FindAll(ctx, specs...)
	return int64(len(msgs)), nil
}

func (r *fakeMessageRepo) MarkRoomRead(ctx context.Context, roomId, userId uuid.UUID, readAt time.Time) (int64, error) {
	var marked int64
	for _, m := range r.store.messages {
		if m.RoomId != roomId || m.SenderId == userId {
			continue
		}
		receipts := r.store.reads[m.Id]
		if receipts == nil {
			receipts = make(map[uuid.UUID]time.Time)
			r.store.reads[m.Id] = receipts
		}
		if _, already := receipts[userId]; already {
			continue
		}
		receipts[userId] = readAt
		m.ReadBy = append(m.ReadBy, entity.ReadReceipt{UserId: userId, ReadAt: readAt})
		marked++
	}
	return marked, nil
}

func (r *fakeMessageRepo) UnreadCount(ctx context.Context, roomId, userId uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.store.messages {
		if m.RoomId != roomId || m.SenderId == userId {
			continue
		}
		if _, read := r.store.reads[m.Id][userId]; !read {
			n++
		}
	}
	return n, nil
}

func messageMatches(m *entity.Message, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if m.Id != sp.ID {
				return false
			}
		case specification.ByRoomID:
			if m.RoomId != sp.RoomID {
				return false
			}
		case specification.CreatedBefore:
			if !m.CreatedAt.Before(sp.Before) {
				return false
			}
		case specification.NotSentBy:
			if m.SenderId == sp.UserID {
				return false
			}
		}
	}
	return true
}

// Shared helpers

func containsId(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, specs []specification.Specification) []T {
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			if p.Offset >= len(items) {
				return nil
			}
			items = items[p.Offset:]
			if p.Limit > 0 && len(items) > p.Limit {
				items = items[:p.Limit]
			}
		}
	}
	return items
}

// fakeUnitOfWork

type fakeUnitOfWork struct {
	users    *fakeUserRepo
	rooms    *fakeRoomRepo
	messages *fakeMessageRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository       { return u.users }
func (u *fakeUnitOfWork) RoomRepository() contract.RoomRepository       { return u.rooms }
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository { return u.messages }

type fakeFactory struct{ uow *fakeUnitOfWork }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newFakeFactory(store *memoryStore) *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{
		users:    &fakeUserRepo{store: store},
		rooms:    &fakeRoomRepo{store: store},
		messages: &fakeMessageRepo{store: store},
	}}
}

// fakePublisher records published events for assertions.

type fakePublisher struct {
	published []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) {
	p.published = append(p.published, event)
}
