package api

import (
	"strconv"

	"github.com/Yandex-School/SplitBill-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new instance of ProductHandler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct adds a product to a room --> POST /v1/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	body := struct {
		Name   *string `json:"name"`
		Price  *int64  `json:"price"`
		RoomID *int    `json:"room_id"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if body.Name == nil || body.Price == nil || body.RoomID == nil {
		return c.JSON(400, map[string]string{"error": "'name', 'price', and 'room_id' fields are required."})
	}

	product, err := h.productService.CreateProduct(c.Request().Context(), *body.Name, *body.Price, *body.RoomID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, product)
}

// GetProduct retrieves a product --> GET /v1/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.productService.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, product)
}

// DeleteProduct removes a product --> DELETE /v1/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid product ID"})
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), productID); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, map[string]interface{}{"id": productID, "status": "deleted"})
}

// GetProducts lists products associated with the caller --> GET /v1/products/
func (h *ProductHandler) GetProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	products, err := h.productService.ListProducts(c.Request().Context(), CurrentUserID(c), page, limit, c.QueryParam("order_by"))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(200, products)
}
