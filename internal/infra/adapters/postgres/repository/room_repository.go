package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)

	// GetByIDForUpdate locks the room row for the rest of the transaction
	// so a capacity check and the following insert act as one unit.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error)

	Delete(ctx context.Context, id uuid.UUID) error
	SetCreator(ctx context.Context, roomID, userID uuid.UUID) error

	// AddMember is an idempotent no-op when the edge already exists.
	AddMember(ctx context.Context, roomID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error
	IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
	CountMembers(ctx context.Context, roomID uuid.UUID) (int, error)
	ListMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error)

	ListOpen(ctx context.Context) ([]*models.RoomSummary, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Room, error)
}

type roomRepo struct {
	db *sqlx.DB
}

func NewRoomRepo(db *sqlx.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	query := "INSERT INTO rooms (id, creator_id, title, capacity) VALUES ($1, $2, $3, $4)"

	_, err := postgres.Queryer(ctx, r.db).ExecContext(
		ctx,
		query,
		room.ID,
		room.CreatorID,
		room.Title,
		room.Capacity,
	)
	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}

	return nil
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.getByID(ctx, id, "SELECT * FROM rooms WHERE id = $1")
}

func (r *roomRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return r.getByID(ctx, id, "SELECT * FROM rooms WHERE id = $1 FOR UPDATE")
}

func (r *roomRepo) getByID(ctx context.Context, id uuid.UUID, query string) (*models.Room, error) {
	var room models.Room

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &room, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &room, nil
}

func (r *roomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// room_members rows go with the room via ON DELETE CASCADE.
	res, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, "DELETE FROM rooms WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return domain.ErrNotFound
	}

	return nil
}

func (r *roomRepo) SetCreator(ctx context.Context, roomID, userID uuid.UUID) error {
	query := "UPDATE rooms SET creator_id = $1, updated_at = now() WHERE id = $2"

	res, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, query, userID, roomID)
	if err != nil {
		return fmt.Errorf("set creator: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return domain.ErrNotFound
	}

	return nil
}

func (r *roomRepo) AddMember(ctx context.Context, roomID, userID uuid.UUID) error {
	query := "INSERT INTO room_members (room_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING"

	_, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, query, roomID, userID)
	if err != nil {
		return fmt.Errorf("add member: %w", err)
	}

	return nil
}

func (r *roomRepo) RemoveMember(ctx context.Context, roomID, userID uuid.UUID) error {
	query := "DELETE FROM room_members WHERE room_id = $1 AND user_id = $2"

	_, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, query, roomID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}

	return nil
}

func (r *roomRepo) IsMember(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	var exists bool

	query := "SELECT EXISTS (SELECT 1 FROM room_members WHERE room_id = $1 AND user_id = $2)"

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &exists, query, roomID, userID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *roomRepo) CountMembers(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int

	query := "SELECT COUNT(*) FROM room_members WHERE room_id = $1"

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &count, query, roomID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *roomRepo) ListMemberIDs(ctx context.Context, roomID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	query := "SELECT user_id FROM room_members WHERE room_id = $1 ORDER BY joined_at"

	err := sqlx.SelectContext(ctx, postgres.Queryer(ctx, r.db), &ids, query, roomID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *roomRepo) ListOpen(ctx context.Context) ([]*models.RoomSummary, error) {
	var rooms []*models.RoomSummary

	query := `
		SELECT r.*, COUNT(m.user_id) AS member_count
		FROM rooms r
		LEFT JOIN room_members m ON r.id = m.room_id
		GROUP BY r.id
		ORDER BY r.created_at DESC
	`

	err := sqlx.SelectContext(ctx, postgres.Queryer(ctx, r.db), &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *roomRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Room, error) {
	var rooms []*models.Room

	query := `
		SELECT r.*
		FROM rooms r
		INNER JOIN room_members m ON r.id = m.room_id
		WHERE m.user_id = $1
		ORDER BY r.created_at DESC
	`

	err := sqlx.SelectContext(ctx, postgres.Queryer(ctx, r.db), &rooms, query, userID)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
