package service

import (
	"context"
	"errors"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
	"github.com/Yandex-School/SplitBill-backend/internal/repository"
)

type ProductService struct {
	products repository.ProductStore
	rooms    repository.RoomStore
}

// NewProductService creates a new instance of ProductService.
func NewProductService(products repository.ProductStore, rooms repository.RoomStore) *ProductService {
	return &ProductService{products: products, rooms: rooms}
}

// CreateProduct creates a priced product inside an existing room.
func (s *ProductService) CreateProduct(ctx context.Context, name string, price int64, roomID int) (*entity.Product, error) {
	if name == "" {
		return nil, entity.NewValidationError("'name', 'price', and 'room_id' fields are required.")
	}
	if price < 0 {
		return nil, entity.NewValidationError("price must be non-negative")
	}

	if _, err := s.rooms.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("Room ID is Invalid!")
		}
		logger.Error().Err(err).Msgf("Error getting room by ID %d", roomID)
		return nil, err
	}

	product, err := s.products.CreateProduct(ctx, &entity.Product{Name: name, Price: price, RoomID: roomID})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.NewConflictError("Product already exists.")
		}
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by id.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("Product not found")
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product; its associations are cascaded away.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.NewNotFoundError("Product not found")
		}
		logger.Error().Err(err).Msgf("Error deleting product %d", id)
		return err
	}
	return nil
}

// ListProducts returns a page of products userID is associated with.
func (s *ProductService) ListProducts(ctx context.Context, userID, page, limit int, orderBy string) (*entity.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.products.CountProductsByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting products")
		return nil, err
	}

	items, err := s.products.ListProductsByUser(ctx, userID, limit, (page-1)*limit, orderBy)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}

	return &entity.ProductPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
