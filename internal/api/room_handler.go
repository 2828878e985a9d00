package api

import (
	"strconv"

	"github.com/Yandex-School/SplitBill-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new instance of RoomHandler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom creates a room owned by the caller --> POST /v1/rooms
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	body := struct {
		Name string `json:"name"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	room, err := h.roomService.CreateRoom(c.Request().Context(), CurrentUserID(c), body.Name)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, room)
}

// JoinRoom adds the caller to a room --> POST /v1/rooms/join/:id
func (h *RoomHandler) JoinRoom(c echo.Context) error {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid room ID"})
	}

	if err := h.roomService.JoinRoom(c.Request().Context(), CurrentUserID(c), roomID); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, true)
}

// UpdateRoom renames a room --> PUT /v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid room ID"})
	}

	body := struct {
		Name string `json:"name"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.roomService.UpdateRoom(c.Request().Context(), roomID, body.Name); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]string{"status": "success"})
}

// GetRoom retrieves a room --> GET /v1/rooms/:id
func (h *RoomHandler) GetRoom(c echo.Context) error {
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid room ID"})
	}

	room, err := h.roomService.GetRoom(c.Request().Context(), roomID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, room)
}

// GetRooms lists the caller's rooms --> GET /v1/rooms/
func (h *RoomHandler) GetRooms(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	rooms, err := h.roomService.ListRooms(c.Request().Context(), CurrentUserID(c), page, limit, c.QueryParam("order_by"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, rooms)
}
