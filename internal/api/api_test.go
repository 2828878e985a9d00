package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Yandex-School/SplitBill-backend/internal/repository"
	"github.com/Yandex-School/SplitBill-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e     *echo.Echo
	store *repository.MemoryStore
}

// newTestServer wires the full route table over in-memory stores, mirroring
// cmd/main.go minus the rate limiter and kafka.
func newTestServer() *testServer {
	store := repository.NewMemoryStore()
	sessions := repository.NewMemorySessionStore()

	userService := service.NewUserService(store, sessions, []byte("secret"))
	roomService := service.NewRoomService(store)
	productService := service.NewProductService(store, store)
	userProductService := service.NewUserProductService(store, store, store, nil)

	userHandler := NewUserHandler(userService)
	roomHandler := NewRoomHandler(roomService)
	productHandler := NewProductHandler(productService)
	userProductHandler := NewUserProductHandler(userProductService)

	e := echo.New()

	e.POST("/register", userHandler.Register)
	e.POST("/login", userHandler.Login)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "split-bill-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	v1 := e.Group("/v1", SessionMiddleware(userService))

	v1.POST("/rooms", roomHandler.CreateRoom)
	v1.GET("/rooms/", roomHandler.GetRooms)
	v1.GET("/rooms/:id", roomHandler.GetRoom)
	v1.PUT("/rooms/:id", roomHandler.UpdateRoom)
	v1.POST("/rooms/join/:id", roomHandler.JoinRoom)

	v1.POST("/products", productHandler.CreateProduct)
	v1.GET("/products/", productHandler.GetProducts)
	v1.GET("/products/:id", productHandler.GetProduct)
	v1.DELETE("/products/:id", productHandler.DeleteProduct)

	v1.POST("/user-products", userProductHandler.AddUserToProduct)
	v1.GET("/user-products/", userProductHandler.GetRoomUserProducts)
	v1.GET("/user-products/:id", userProductHandler.GetUserProducts)
	v1.PUT("/user-products/:id", userProductHandler.UpdateUserProduct)

	return &testServer{e: e, store: store}
}

func (ts *testServer) request(t *testing.T, method, path, ticket string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if ticket != "" {
		req.Header.Set(UserTicketHeader, ticket)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

// authTicket registers test_user and logs them in.
func (ts *testServer) authTicket(t *testing.T) string {
	t.Helper()

	creds := map[string]string{"username": "test_user", "password": "test_password"}
	rec, _ := ts.request(t, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := ts.request(t, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := body["id"].(string)
	require.True(t, ok, "login must return the ticket under 'id'")
	return token
}

// setupProduct creates test_room (and test_product inside it) and returns
// the ticket.
func (ts *testServer) setupProduct(t *testing.T) string {
	t.Helper()
	ticket := ts.authTicket(t)

	rec, _ := ts.request(t, http.MethodPost, "/v1/rooms", ticket, map[string]string{"name": "test_room"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.request(t, http.MethodPost, "/v1/products", ticket, map[string]interface{}{
		"name": "test_product", "price": 12000, "room_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return ticket
}

func TestRegisterValidationAndConflict(t *testing.T) {
	ts := newTestServer()

	rec, body := ts.request(t, http.MethodPost, "/register", "", map[string]string{"username": "only_user"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and password are required.", body["error"])

	creds := map[string]string{"username": "test_user", "password": "pw"}
	rec, _ = ts.request(t, http.MethodPost, "/register", "", creds)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = ts.request(t, http.MethodPost, "/register", "", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists.", body["error"])
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer()
	ts.authTicket(t)

	rec, _ := ts.request(t, http.MethodPost, "/login", "", map[string]string{"username": "test_user", "password": "wrong"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.request(t, http.MethodPost, "/login", "", map[string]string{"username": "ghost", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthShortCircuits(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.request(t, http.MethodPost, "/v1/rooms", "", map[string]string{"name": "test_room"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.request(t, http.MethodPost, "/v1/rooms", "bogus-ticket", map[string]string{"name": "test_room"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoomLifecycle(t *testing.T) {
	ts := newTestServer()
	ticket := ts.authTicket(t)

	rec, body := ts.request(t, http.MethodPost, "/v1/rooms", ticket, map[string]string{"name": "new_room"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new_room", body["name"])

	rec, _ = ts.request(t, http.MethodPost, "/v1/rooms/join/1", ticket, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.request(t, http.MethodPost, "/v1/rooms/join/9999", ticket, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = ts.request(t, http.MethodPut, "/v1/rooms/1", ticket, map[string]string{"name": "updated_room"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	rec, _ = ts.request(t, http.MethodPut, "/v1/rooms/9999", ticket, map[string]string{"name": "nonexistent_room"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = ts.request(t, http.MethodGet, "/v1/rooms/", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)

	rec, body = ts.request(t, http.MethodGet, "/v1/rooms/1", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "updated_room", body["name"])
}

func TestProductLifecycle(t *testing.T) {
	ts := newTestServer()
	ticket := ts.authTicket(t)

	rec, _ := ts.request(t, http.MethodPost, "/v1/rooms", ticket, map[string]string{"name": "test_room"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := ts.request(t, http.MethodPost, "/v1/products", ticket, map[string]interface{}{
		"name": "test_product", "price": 12000, "room_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "test_product", body["name"])
	assert.Equal(t, float64(12000), body["price"])
	assert.Equal(t, float64(1), body["room_id"])

	rec, body = ts.request(t, http.MethodPost, "/v1/products", ticket, map[string]interface{}{"name": "incomplete"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "'name', 'price', and 'room_id' fields are required.", body["error"])

	rec, body = ts.request(t, http.MethodPost, "/v1/products", ticket, map[string]interface{}{
		"name": "invalid_room_product", "price": 20000, "room_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Room ID is Invalid!", body["error"])

	rec, body = ts.request(t, http.MethodGet, "/v1/products/1", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test_product", body["name"])

	rec, _ = ts.request(t, http.MethodGet, "/v1/products/9999", ticket, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = ts.request(t, http.MethodDelete, "/v1/products/1", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "deleted", body["status"])

	rec, _ = ts.request(t, http.MethodDelete, "/v1/products/1", ticket, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddUserToProductFlow(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, body := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, body["id"])
	assert.Equal(t, float64(1), body["user_id"])
	assert.Equal(t, float64(1), body["product_id"])
	assert.Equal(t, "UNPAID", body["status"])

	// the same pair again is a conflict, never a silent update
	rec, body = ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already associated with this product", body["error"])
}

func TestAddUserToProductMissingFields(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, body := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{"product_id": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "'product_id' and 'user_id' fields are required", body["error"])
}

func TestAddUserToProductUnknownReferences(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, body := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 99999,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product Does not exist", body["error"])

	rec, body = ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 99999, "product_id": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User Does not exist!", body["error"])
}

func TestAddUserToProductInvalidStatus(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, body := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 1, "status": "INVALID_STATUS",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "error")
}

func TestGetUserProducts(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, _ := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := ts.request(t, http.MethodGet, "/v1/user-products/1", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)

	// a user with no associations gets an empty list, not an error
	rec, body = ts.request(t, http.MethodGet, "/v1/user-products/42", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok = body["items"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestGetRoomUserProducts(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, _ := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := ts.request(t, http.MethodGet, "/v1/user-products/?room_id=1", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	require.Len(t, users, 1)

	group, ok := users[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), group["user_id"])
	assert.Equal(t, []interface{}{float64(1)}, group["product_ids"])

	// empty aggregation is a 200 with no groups
	rec, body = ts.request(t, http.MethodGet, "/v1/user-products/?room_id=9999", ticket, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users, ok = body["users"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, users)

	rec, body = ts.request(t, http.MethodGet, "/v1/user-products/", ticket, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing room_id query parameter.", body["error"])
}

func TestUpdateUserProduct(t *testing.T) {
	ts := newTestServer()
	ticket := ts.setupProduct(t)

	rec, _ := ts.request(t, http.MethodPost, "/v1/user-products", ticket, map[string]interface{}{
		"user_id": 1, "product_id": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := ts.request(t, http.MethodPut, "/v1/user-products/1", ticket, map[string]string{"status": "PAID"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "PAID", body["status"])

	rec, body = ts.request(t, http.MethodPut, "/v1/user-products/999", ticket, map[string]string{"status": "PAID"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body, "error")

	rec, body = ts.request(t, http.MethodPut, "/v1/user-products/1", ticket, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "error")
}

func TestHealth(t *testing.T) {
	ts := newTestServer()

	rec, body := ts.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
