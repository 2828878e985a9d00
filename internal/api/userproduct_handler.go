package api

import (
	"strconv"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
	"github.com/Yandex-School/SplitBill-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UserProductHandler struct {
	userProductService *service.UserProductService
}

// NewUserProductHandler creates a new instance of UserProductHandler
func NewUserProductHandler(userProductService *service.UserProductService) *UserProductHandler {
	return &UserProductHandler{userProductService: userProductService}
}

// AddUserToProduct associates a user with a product --> POST /v1/user-products
func (h *UserProductHandler) AddUserToProduct(c echo.Context) error {
	body := struct {
		UserID    *int   `json:"user_id"`
		ProductID *int   `json:"product_id"`
		Status    string `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	// absence of either id is a validation error, not a lookup failure
	if body.ProductID == nil || body.UserID == nil {
		return c.JSON(400, map[string]string{"error": "'product_id' and 'user_id' fields are required"})
	}

	up, err := h.userProductService.AddUserToProduct(c.Request().Context(), *body.UserID, *body.ProductID, body.Status)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, up)
}

// GetUserProducts lists a user's associations --> GET /v1/user-products/:id
func (h *UserProductHandler) GetUserProducts(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid user ID"})
	}

	items, err := h.userProductService.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string][]*entity.UserProduct{"items": items})
}

// GetRoomUserProducts aggregates a room's associations grouped by user
// --> GET /v1/user-products/?room_id=N
func (h *UserProductHandler) GetRoomUserProducts(c echo.Context) error {
	roomParam := c.QueryParam("room_id")
	if roomParam == "" {
		return c.JSON(400, map[string]string{"error": "Missing room_id query parameter."})
	}
	roomID, err := strconv.Atoi(roomParam)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid room ID"})
	}

	users, err := h.userProductService.GetByRoom(c.Request().Context(), roomID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string][]*entity.RoomUserProducts{"users": users})
}

// UpdateUserProduct sets the payment status --> PUT /v1/user-products/:id
func (h *UserProductHandler) UpdateUserProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid user product ID"})
	}

	body := struct {
		Status *string `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if body.Status == nil {
		return c.JSON(400, map[string]string{"error": "Missing or invalid 'status' field"})
	}

	up, err := h.userProductService.UpdateStatus(c.Request().Context(), id, *body.Status)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, up)
}
