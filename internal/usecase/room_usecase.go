package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/application/metric"
	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/domain/output"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

// MaxRoomExits is the lifetime cap on voluntary room exits per user.
const MaxRoomExits = 2

// RoomUsecase is the room membership engine. Every operation runs as one
// atomic unit of work: all precondition checks happen before any write, and
// the room row is locked for the duration of a check-and-mutate so
// concurrent joins can never overshoot capacity.
type RoomUsecase interface {
	CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error)
	JoinRoom(ctx context.Context, roomID, userID uuid.UUID) (output.JoinResult, error)
	ExitRoom(ctx context.Context, roomID, userID uuid.UUID) (output.ExitResult, error)
	CloseRoom(ctx context.Context, roomID, requesterID uuid.UUID) error
	HandoverRoom(ctx context.Context, roomID, requesterID, newCreatorID uuid.UUID) error

	GetRoomDetail(ctx context.Context, roomID uuid.UUID) (*output.RoomDetail, error)
	ListOpenRooms(ctx context.Context) ([]*models.RoomSummary, error)
	ListRoomsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Room, error)
}

type roomUsecase struct {
	txm         repository.TxManager
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewRoomUsecase(
	txm repository.TxManager,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) RoomUsecase {
	return &roomUsecase{
		txm:         txm,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (uc *roomUsecase) CreateRoom(ctx context.Context, in *input.CreateRoomInput) (*models.Room, error) {
	if in.Capacity < 1 {
		return nil, domain.ErrInvalidCapacity
	}

	room := models.NewRoom(in.CreatorID, in.Title, in.Capacity)

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		if _, err := uc.userRepo.GetUserByID(ctx, in.CreatorID); err != nil {
			return fmt.Errorf("get creator: %w", err)
		}

		if err := uc.roomRepo.Create(ctx, room); err != nil {
			return err
		}

		return uc.roomRepo.AddMember(ctx, room.ID, in.CreatorID)
	})
	if err != nil {
		return nil, err
	}

	metric.RoomCreated()

	return room, nil
}

func (uc *roomUsecase) JoinRoom(ctx context.Context, roomID, userID uuid.UUID) (output.JoinResult, error) {
	var res output.JoinResult

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		room, err := uc.roomRepo.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}

		if _, err := uc.userRepo.GetUserByID(ctx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		isMember, err := uc.roomRepo.IsMember(ctx, roomID, userID)
		if err != nil {
			return err
		}

		count, err := uc.roomRepo.CountMembers(ctx, roomID)
		if err != nil {
			return err
		}

		// Joining twice is a safe retry, not an error.
		if isMember {
			res = output.JoinResult{AlreadyMember: true, MemberCount: count}
			return nil
		}

		if count >= room.Capacity {
			return domain.ErrCapacityExceeded
		}

		if err := uc.roomRepo.AddMember(ctx, roomID, userID); err != nil {
			return err
		}

		res = output.JoinResult{MemberCount: count + 1}

		return nil
	})
	if err != nil {
		return output.JoinResult{}, err
	}

	if !res.AlreadyMember {
		metric.RoomJoined()
	}

	return res, nil
}

func (uc *roomUsecase) ExitRoom(ctx context.Context, roomID, userID uuid.UUID) (output.ExitResult, error) {
	var res output.ExitResult

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		room, err := uc.roomRepo.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}

		user, err := uc.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if user.ExitCount >= MaxRoomExits {
			return domain.ErrExitLimitExceeded
		}

		if room.CreatorID == userID {
			return domain.ErrCreatorMustTransferOrClose
		}

		isMember, err := uc.roomRepo.IsMember(ctx, roomID, userID)
		if err != nil {
			return err
		}

		if !isMember {
			return domain.ErrNotMember
		}

		// Membership removal and the exit charge commit or roll back
		// together.
		if err := uc.roomRepo.RemoveMember(ctx, roomID, userID); err != nil {
			return err
		}

		if err := uc.userRepo.IncrementExitCount(ctx, userID); err != nil {
			return err
		}

		count, err := uc.roomRepo.CountMembers(ctx, roomID)
		if err != nil {
			return err
		}

		// A room left with no members is deleted rather than orphaned.
		if count == 0 {
			if err := uc.roomRepo.Delete(ctx, roomID); err != nil {
				return err
			}
		}

		res = output.ExitResult{RemainingExits: MaxRoomExits - (user.ExitCount + 1)}

		return nil
	})
	if err != nil {
		return output.ExitResult{}, err
	}

	metric.RoomExited()

	return res, nil
}

func (uc *roomUsecase) CloseRoom(ctx context.Context, roomID, requesterID uuid.UUID) error {
	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		room, err := uc.roomRepo.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}

		if room.CreatorID != requesterID {
			return domain.ErrForbidden
		}

		return uc.roomRepo.Delete(ctx, roomID)
	})
	if err != nil {
		return err
	}

	metric.RoomClosed()

	return nil
}

func (uc *roomUsecase) HandoverRoom(ctx context.Context, roomID, requesterID, newCreatorID uuid.UUID) error {
	return uc.txm.RunTx(ctx, func(ctx context.Context) error {
		room, err := uc.roomRepo.GetByIDForUpdate(ctx, roomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}

		if room.CreatorID != requesterID {
			return domain.ErrForbidden
		}

		isMember, err := uc.roomRepo.IsMember(ctx, roomID, newCreatorID)
		if err != nil {
			return err
		}

		// The creator role only ever moves to a current member.
		if !isMember {
			return domain.ErrNotMember
		}

		return uc.roomRepo.SetCreator(ctx, roomID, newCreatorID)
	})
}

func (uc *roomUsecase) GetRoomDetail(ctx context.Context, roomID uuid.UUID) (*output.RoomDetail, error) {
	var detail output.RoomDetail

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		room, err := uc.roomRepo.GetByID(ctx, roomID)
		if err != nil {
			return fmt.Errorf("get room: %w", err)
		}

		memberIDs, err := uc.roomRepo.ListMemberIDs(ctx, roomID)
		if err != nil {
			return err
		}

		profiles, err := uc.profileRepo.GetProfilesByUserIDs(ctx, memberIDs)
		if err != nil {
			return err
		}

		byUserID := make(map[uuid.UUID]*models.Profile, len(profiles))
		for _, p := range profiles {
			byUserID[p.UserID] = p
		}

		detail = output.RoomDetail{
			Room:    *room,
			Members: make([]output.MemberView, 0, len(memberIDs)),
		}

		for _, id := range memberIDs {
			view := output.MemberView{
				UserID:    id,
				IsCreator: id == room.CreatorID,
			}

			if p, ok := byUserID[id]; ok {
				view.Nickname = p.Nickname
				view.University = p.University
				view.Gender = p.Gender
			}

			detail.Members = append(detail.Members, view)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (uc *roomUsecase) ListOpenRooms(ctx context.Context) ([]*models.RoomSummary, error) {
	var rooms []*models.RoomSummary

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		rooms, err = uc.roomRepo.ListOpen(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (uc *roomUsecase) ListRoomsByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Room, error) {
	var rooms []*models.Room

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		rooms, err = uc.roomRepo.ListByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
