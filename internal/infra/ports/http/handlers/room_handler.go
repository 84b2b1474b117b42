package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/constant"
	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/infra/appctx"
	"github.com/meetu-app/meetu-server/internal/infra/ports/http/dto"
	"github.com/meetu-app/meetu-server/internal/usecase"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

func (h *RoomHandler) ListRoomsHandler(c echo.Context) error {
	rooms, err := h.roomUsecase.ListOpenRooms(c.Request().Context())
	if err != nil {
		slog.Error("list rooms", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	resp := dto.ListRoomsResponse{
		Rooms: make([]dto.RoomResponse, 0, len(rooms)),
	}

	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, dto.NewRoomResponseFromSummary(room))
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *RoomHandler) ListMyRoomsHandler(c echo.Context) error {
	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	rooms, err := h.roomUsecase.ListRoomsByUserID(c.Request().Context(), userID)
	if err != nil {
		slog.Error("list my rooms", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	detail, err := h.roomUsecase.GetRoomDetail(c.Request().Context(), roomID)
	if err != nil {
		slog.Error("get room detail", slog.String(constant.RoomID, roomID.String()), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *RoomHandler) CreateRoomHandler(c echo.Context) error {
	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	room, err := h.roomUsecase.CreateRoom(c.Request().Context(), &input.CreateRoomInput{
		CreatorID: userID,
		Title:     req.Title,
		Capacity:  req.Capacity,
	})
	if err != nil {
		slog.Error("create room", slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) JoinRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	res, err := h.roomUsecase.JoinRoom(c.Request().Context(), roomID, userID)
	if err != nil {
		slog.Error("join room", slog.String(constant.RoomID, roomID.String()), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.JoinRoomResponse{
		AlreadyMember: res.AlreadyMember,
		MemberCount:   res.MemberCount,
	})
}

func (h *RoomHandler) ExitRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	res, err := h.roomUsecase.ExitRoom(c.Request().Context(), roomID, userID)
	if err != nil {
		slog.Error("exit room", slog.String(constant.RoomID, roomID.String()), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ExitRoomResponse{RemainingExits: res.RemainingExits})
}

func (h *RoomHandler) HandoverRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	var req dto.HandoverRoomRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	if err := h.roomUsecase.HandoverRoom(c.Request().Context(), roomID, userID, req.NewCreatorID); err != nil {
		slog.Error("handover room", slog.String(constant.RoomID, roomID.String()), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *RoomHandler) CloseRoomHandler(c echo.Context) error {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid room id"})
	}

	userID, ok := appctx.UserID(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid user"})
	}

	if err := h.roomUsecase.CloseRoom(c.Request().Context(), roomID, userID); err != nil {
		slog.Error("close room", slog.String(constant.RoomID, roomID.String()), slog.Any(constant.Error, err))
		return domainError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
