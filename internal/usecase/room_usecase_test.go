package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/memory"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type roomFixture struct {
	rooms    RoomUsecase
	txm      repository.TxManager
	roomRepo repository.RoomRepository
	userRepo repository.UserRepository
	profRepo repository.ProfileRepository
}

func newRoomFixture(t *testing.T) *roomFixture {
	t.Helper()

	store := memory.NewStore()
	txm := memory.NewTxManager(store)
	roomRepo := memory.NewRoomRepo(store)
	userRepo := memory.NewUserRepo(store)
	profRepo := memory.NewProfileRepo(store)

	return &roomFixture{
		rooms:    NewRoomUsecase(txm, roomRepo, userRepo, profRepo),
		txm:      txm,
		roomRepo: roomRepo,
		userRepo: userRepo,
		profRepo: profRepo,
	}
}

func (f *roomFixture) createUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := models.NewUser()
	user.Email = email

	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		return f.userRepo.CreateUser(ctx, user)
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

func (f *roomFixture) createRoom(t *testing.T, creatorID uuid.UUID, capacity int) *models.Room {
	t.Helper()

	room, err := f.rooms.CreateRoom(context.Background(), &input.CreateRoomInput{
		CreatorID: creatorID,
		Title:     "after-class dinner",
		Capacity:  capacity,
	})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	return room
}

func (f *roomFixture) memberCount(t *testing.T, roomID uuid.UUID) int {
	t.Helper()

	var count int

	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		var err error
		count, err = f.roomRepo.CountMembers(ctx, roomID)
		return err
	})
	if err != nil {
		t.Fatalf("count members: %v", err)
	}

	return count
}

func (f *roomFixture) exitCount(t *testing.T, userID uuid.UUID) int {
	t.Helper()

	var user *models.User

	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		var err error
		user, err = f.userRepo.GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		t.Fatalf("get user: %v", err)
	}

	return user.ExitCount
}

func TestCreateRoom_CreatorIsFirstMember(t *testing.T) {
	f := newRoomFixture(t)
	creator := f.createUser(t, "a@univ.ac.kr")

	room := f.createRoom(t, creator.ID, 4)

	if room.CreatorID != creator.ID {
		t.Errorf("CreatorID = %s, want %s", room.CreatorID, creator.ID)
	}
	if got := f.memberCount(t, room.ID); got != 1 {
		t.Errorf("member count = %d, want 1", got)
	}
}

func TestCreateRoom_UnknownCreator(t *testing.T) {
	f := newRoomFixture(t)

	_, err := f.rooms.CreateRoom(context.Background(), &input.CreateRoomInput{
		CreatorID: uuid.New(),
		Title:     "ghost room",
		Capacity:  4,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateRoom_InvalidCapacity(t *testing.T) {
	f := newRoomFixture(t)
	creator := f.createUser(t, "a@univ.ac.kr")

	_, err := f.rooms.CreateRoom(context.Background(), &input.CreateRoomInput{
		CreatorID: creator.ID,
		Title:     "empty room",
		Capacity:  0,
	})
	if !errors.Is(err, domain.ErrInvalidCapacity) {
		t.Fatalf("err = %v, want ErrInvalidCapacity", err)
	}
}

func TestJoinRoom_FillsToCapacity(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")
	c := f.createUser(t, "c@univ.ac.kr")

	room := f.createRoom(t, a.ID, 2)

	res, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if res.AlreadyMember || res.MemberCount != 2 {
		t.Errorf("res = %+v, want member count 2", res)
	}

	_, err = f.rooms.JoinRoom(context.Background(), room.ID, c.ID)
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
	if got := f.memberCount(t, room.ID); got != 2 {
		t.Errorf("member count = %d, want 2", got)
	}
}

func TestJoinRoom_Idempotent(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("first join: %v", err)
	}

	res, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}
	if !res.AlreadyMember {
		t.Error("second join should report already a member")
	}
	if res.MemberCount != 2 {
		t.Errorf("member count = %d, want 2", res.MemberCount)
	}
	if got := f.memberCount(t, room.ID); got != 2 {
		t.Errorf("stored member count = %d, want 2", got)
	}
}

func TestJoinRoom_FullRoomStillIdempotentForMembers(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 2)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	// Room is full now, but a member retrying must not get a capacity error.
	res, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID)
	if err != nil {
		t.Fatalf("retry join: %v", err)
	}
	if !res.AlreadyMember {
		t.Error("retry join should report already a member")
	}
}

func TestJoinRoom_NotFound(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")

	room := f.createRoom(t, a.ID, 2)

	if _, err := f.rooms.JoinRoom(context.Background(), uuid.New(), a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown room: err = %v, want ErrNotFound", err)
	}

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestJoinRoom_ConcurrentJoinsNeverExceedCapacity(t *testing.T) {
	const capacity = 5
	const joiners = 24

	f := newRoomFixture(t)
	creator := f.createUser(t, "creator@univ.ac.kr")
	room := f.createRoom(t, creator.ID, capacity)

	users := make([]*models.User, joiners)
	for i := range users {
		users[i] = f.createUser(t, fmt.Sprintf("u%d@univ.ac.kr", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, joiners)

	for i, u := range users {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, errs[i] = f.rooms.JoinRoom(context.Background(), room.ID, id)
		}(i, u.ID)
	}

	wg.Wait()

	var joined, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			joined++
		case errors.Is(err, domain.ErrCapacityExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if joined != capacity-1 {
		t.Errorf("joined = %d, want %d", joined, capacity-1)
	}
	if rejected != joiners-(capacity-1) {
		t.Errorf("rejected = %d, want %d", rejected, joiners-(capacity-1))
	}
	if got := f.memberCount(t, room.ID); got != capacity {
		t.Errorf("member count = %d, capacity is %d", got, capacity)
	}
}

func TestExitRoom_ChargesExit(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	res, err := f.rooms.ExitRoom(context.Background(), room.ID, b.ID)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	if res.RemainingExits != MaxRoomExits-1 {
		t.Errorf("RemainingExits = %d, want %d", res.RemainingExits, MaxRoomExits-1)
	}
	if got := f.exitCount(t, b.ID); got != 1 {
		t.Errorf("exit count = %d, want 1", got)
	}
	if got := f.memberCount(t, room.ID); got != 1 {
		t.Errorf("member count = %d, want 1", got)
	}
}

func TestExitRoom_LimitReached(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	d := f.createUser(t, "d@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, d.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		if err := f.userRepo.IncrementExitCount(ctx, d.ID); err != nil {
			return err
		}
		return f.userRepo.IncrementExitCount(ctx, d.ID)
	})
	if err != nil {
		t.Fatalf("seed exit count: %v", err)
	}

	if _, err := f.rooms.ExitRoom(context.Background(), room.ID, d.ID); !errors.Is(err, domain.ErrExitLimitExceeded) {
		t.Fatalf("err = %v, want ErrExitLimitExceeded", err)
	}

	// A rejected exit charges nothing and removes nothing.
	if got := f.exitCount(t, d.ID); got != MaxRoomExits {
		t.Errorf("exit count = %d, want %d", got, MaxRoomExits)
	}
	if got := f.memberCount(t, room.ID); got != 2 {
		t.Errorf("member count = %d, want 2", got)
	}
}

func TestExitRoom_LifetimeCapAcrossRooms(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	d := f.createUser(t, "d@univ.ac.kr")

	rooms := make([]*models.Room, 3)
	for i := range rooms {
		rooms[i] = f.createRoom(t, a.ID, 4)
		if _, err := f.rooms.JoinRoom(context.Background(), rooms[i].ID, d.ID); err != nil {
			t.Fatalf("join room %d: %v", i, err)
		}
	}

	res, err := f.rooms.ExitRoom(context.Background(), rooms[0].ID, d.ID)
	if err != nil {
		t.Fatalf("first exit: %v", err)
	}
	if res.RemainingExits != 1 {
		t.Errorf("remaining after first exit = %d, want 1", res.RemainingExits)
	}

	res, err = f.rooms.ExitRoom(context.Background(), rooms[1].ID, d.ID)
	if err != nil {
		t.Fatalf("second exit: %v", err)
	}
	if res.RemainingExits != 0 {
		t.Errorf("remaining after second exit = %d, want 0", res.RemainingExits)
	}

	if _, err := f.rooms.ExitRoom(context.Background(), rooms[2].ID, d.ID); !errors.Is(err, domain.ErrExitLimitExceeded) {
		t.Fatalf("third exit: err = %v, want ErrExitLimitExceeded", err)
	}
	if got := f.exitCount(t, d.ID); got != MaxRoomExits {
		t.Errorf("exit count = %d, want %d", got, MaxRoomExits)
	}
}

func TestExitRoom_CreatorMustTransferOrClose(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.ExitRoom(context.Background(), room.ID, a.ID); !errors.Is(err, domain.ErrCreatorMustTransferOrClose) {
		t.Fatalf("err = %v, want ErrCreatorMustTransferOrClose", err)
	}
	if got := f.exitCount(t, a.ID); got != 0 {
		t.Errorf("exit count = %d, want 0", got)
	}
}

func TestExitRoom_NotMember(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.ExitRoom(context.Background(), room.ID, b.ID); !errors.Is(err, domain.ErrNotMember) {
		t.Fatalf("err = %v, want ErrNotMember", err)
	}
	if got := f.exitCount(t, b.ID); got != 0 {
		t.Errorf("exit count = %d, want 0", got)
	}
}

func TestHandoverThenExit(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if _, err := f.rooms.ExitRoom(context.Background(), room.ID, a.ID); !errors.Is(err, domain.ErrCreatorMustTransferOrClose) {
		t.Fatalf("creator exit: err = %v, want ErrCreatorMustTransferOrClose", err)
	}

	if err := f.rooms.HandoverRoom(context.Background(), room.ID, a.ID, b.ID); err != nil {
		t.Fatalf("handover: %v", err)
	}

	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		got, err := f.roomRepo.GetByID(ctx, room.ID)
		if err != nil {
			return err
		}
		if got.CreatorID != b.ID {
			t.Errorf("creator = %s, want %s", got.CreatorID, b.ID)
		}

		// Outgoing creator stays a regular member.
		isMember, err := f.roomRepo.IsMember(ctx, room.ID, a.ID)
		if err != nil {
			return err
		}
		if !isMember {
			t.Error("outgoing creator should remain a member")
		}

		return nil
	})
	if err != nil {
		t.Fatalf("inspect room: %v", err)
	}

	res, err := f.rooms.ExitRoom(context.Background(), room.ID, a.ID)
	if err != nil {
		t.Fatalf("exit after handover: %v", err)
	}
	if res.RemainingExits != MaxRoomExits-1 {
		t.Errorf("RemainingExits = %d, want %d", res.RemainingExits, MaxRoomExits-1)
	}
	if got := f.exitCount(t, a.ID); got != 1 {
		t.Errorf("exit count = %d, want 1", got)
	}
}

func TestHandoverRoom_Authorization(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")
	c := f.createUser(t, "c@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := f.rooms.HandoverRoom(context.Background(), room.ID, b.ID, b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-creator handover: err = %v, want ErrForbidden", err)
	}

	if err := f.rooms.HandoverRoom(context.Background(), room.ID, a.ID, c.ID); !errors.Is(err, domain.ErrNotMember) {
		t.Errorf("handover to outsider: err = %v, want ErrNotMember", err)
	}

	if err := f.rooms.HandoverRoom(context.Background(), uuid.New(), a.ID, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("handover on unknown room: err = %v, want ErrNotFound", err)
	}
}

func TestCloseRoom(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	c := f.createUser(t, "c@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, c.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := f.rooms.CloseRoom(context.Background(), room.ID, c.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-creator close: err = %v, want ErrForbidden", err)
	}

	if err := f.rooms.CloseRoom(context.Background(), room.ID, a.ID); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := f.rooms.GetRoomDetail(context.Background(), room.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("get closed room: err = %v, want ErrNotFound", err)
	}

	// Closure never touches exit counters.
	if got := f.exitCount(t, c.ID); got != 0 {
		t.Errorf("exit count = %d, want 0", got)
	}

	if err := f.rooms.CloseRoom(context.Background(), room.ID, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("close retry: err = %v, want ErrNotFound", err)
	}
}

func TestExitRoom_LastMemberOutDeletesRoom(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 2)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	// Simulate an out-of-band removal of the creator (e.g. an account
	// purge), leaving b as the only member.
	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		return f.roomRepo.RemoveMember(ctx, room.ID, a.ID)
	})
	if err != nil {
		t.Fatalf("remove creator: %v", err)
	}

	if _, err := f.rooms.ExitRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("exit: %v", err)
	}

	err = f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		_, err := f.roomRepo.GetByID(ctx, room.ID)
		return err
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("empty room should be deleted, got err = %v", err)
	}
}

func TestGetRoomDetail_MemberProfiles(t *testing.T) {
	f := newRoomFixture(t)
	a := f.createUser(t, "a@univ.ac.kr")
	b := f.createUser(t, "b@univ.ac.kr")

	room := f.createRoom(t, a.ID, 3)

	if _, err := f.rooms.JoinRoom(context.Background(), room.ID, b.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	err := f.txm.RunTx(context.Background(), func(ctx context.Context) error {
		if err := f.profRepo.UpsertProfile(ctx, &models.Profile{
			UserID:     a.ID,
			Nickname:   "sunny",
			University: "SNU",
			Major:      "CS",
			Age:        23,
			Gender:     "f",
		}); err != nil {
			return err
		}

		return f.profRepo.UpsertProfile(ctx, &models.Profile{
			UserID:     b.ID,
			Nickname:   "juno",
			University: "KAIST",
			Major:      "EE",
			Age:        24,
			Gender:     "m",
		})
	})
	if err != nil {
		t.Fatalf("seed profiles: %v", err)
	}

	detail, err := f.rooms.GetRoomDetail(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}

	if len(detail.Members) != 2 {
		t.Fatalf("members = %d, want 2", len(detail.Members))
	}

	byNick := make(map[string]bool, 2)
	for _, m := range detail.Members {
		byNick[m.Nickname] = m.IsCreator
	}

	isCreator, ok := byNick["sunny"]
	if !ok || !isCreator {
		t.Errorf("creator view wrong: %+v", detail.Members)
	}
	if isCreator, ok := byNick["juno"]; !ok || isCreator {
		t.Errorf("member view wrong: %+v", detail.Members)
	}
}
