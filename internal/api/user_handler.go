package api

import (
	"github.com/Yandex-School/SplitBill-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a new user --> POST /register
func (h *UserHandler) Register(c echo.Context) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		PhotoURL string `json:"photo_url"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	user, err := h.userService.Register(c.Request().Context(), body.Username, body.Password, body.FullName, body.PhotoURL)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]int{"id": user.ID})
}

// Login issues a session ticket --> POST /login
func (h *UserHandler) Login(c echo.Context) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.userService.Login(c.Request().Context(), body.Username, body.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	// some clients read "id", others "token"; both carry the ticket
	return c.JSON(200, map[string]string{"id": token, "token": token})
}
