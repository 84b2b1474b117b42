package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type roomRepo struct {
	store *Store
}

func NewRoomRepo(store *Store) repository.RoomRepository {
	return &roomRepo{store: store}
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	rm := *room
	r.store.rooms[room.ID] = &rm
	r.store.members[room.ID] = nil

	return nil
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, ok := r.store.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	rm := *room

	return &rm, nil
}

func (r *roomRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	// The TxManager mutex already serializes the whole unit of work.
	return r.GetByID(ctx, id)
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.rooms[id]; !ok {
		return domain.ErrNotFound
	}

	delete(r.store.rooms, id)
	delete(r.store.members, id)

	return nil
}

func (r *roomRepo) SetCreator(ctx context.Context, roomID, userID uuid.UUID) error {
	room, ok := r.store.rooms[roomID]
	if !ok {
		return domain.ErrNotFound
	}

	room.CreatorID = userID

	return nil
}

func (r *roomRepo) AddMember(ctx context.Context, roomID, userID uuid.UUID) error {
	if slices.Contains(r.store.members[roomID], userID) {
		return nil
	}

	r.store.members[roomID] = append(r.store.members[roomID], userID)

	return nil
}

func (r *roomRepo) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	r.store.members[roomID] = slices.DeleteFunc(r.store.members[roomID], func(id uuid.UUID) bool {
		return id == userID
	})

	return nil
}

func (r *roomRepo) IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	return slices.Contains(r.store.members[roomID], userID), nil
}

func (r *roomRepo) CountMembers(ctx context.Context, roomID uuid.UUID) (int, error) {
	return len(r.store.members[roomID]), nil
}

func (r *roomRepo) ListMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	return slices.Clone(r.store.members[roomID]), nil
}

func (r *roomRepo) ListOpen(ctx context.Context) ([]*models.RoomSummary, error) {
	var rooms []*models.RoomSummary

	for id, room := range r.store.rooms {
		rooms = append(rooms, &models.RoomSummary{
			Room:        *room,
			MemberCount: len(r.store.members[id]),
		})
	}

	return rooms, nil
}

func (r *roomRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Room, error) {
	var rooms []*models.Room

	for id, memberIDs := range r.store.members {
		if slices.Contains(memberIDs, userID) {
			rm := *r.store.rooms[id]
			rooms = append(rooms, &rm)
		}
	}

	return rooms, nil
}
