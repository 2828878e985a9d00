package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
	"github.com/Yandex-School/SplitBill-backend/internal/repository"
	"github.com/segmentio/kafka-go"
)

// UserProductService owns the user-product associations: it enforces
// referential validity against users and products, the one-row-per-pair
// rule, and produces the room-scoped aggregation.
type UserProductService struct {
	userProducts repository.UserProductStore
	products     repository.ProductStore
	users        repository.UserStore
	kafkaWriter  *kafka.Writer
}

// NewUserProductService creates a new instance of UserProductService.
// kafkaWriter may be nil, in which case events are not published.
func NewUserProductService(userProducts repository.UserProductStore, products repository.ProductStore, users repository.UserStore, kafkaWriter *kafka.Writer) *UserProductService {
	return &UserProductService{
		userProducts: userProducts,
		products:     products,
		users:        users,
		kafkaWriter:  kafkaWriter,
	}
}

// AddUserToProduct associates a user with a product. Product existence is
// checked before user existence; the status defaults to UNPAID. The store's
// unique key over the pair is the authoritative duplicate guard, so two
// concurrent calls for the same pair cannot both succeed.
func (s *UserProductService) AddUserToProduct(ctx context.Context, userID, productID int, status string) (*entity.UserProduct, error) {
	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("Product Does not exist")
		}
		logger.Error().Err(err).Msgf("Error getting product by ID %d", productID)
		return nil, err
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("User Does not exist!")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, err
	}

	if status == "" {
		status = entity.StatusUnpaid
	}
	if !entity.ValidStatus(status) {
		return nil, entity.NewValidationError(fmt.Sprintf("Invalid status %q, must be UNPAID or PAID", status))
	}

	// fast path only; the insert below still hits the unique key
	if _, err := s.userProducts.GetUserProductByPair(ctx, userID, productID); err == nil {
		return nil, entity.NewConflictError("User already associated with this product")
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Error().Err(err).Msg("Error checking existing association")
		return nil, err
	}

	up, err := s.userProducts.CreateUserProduct(ctx, &entity.UserProduct{
		UserID:    userID,
		ProductID: productID,
		Status:    status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.NewConflictError("User already associated with this product")
		}
		logger.Error().Err(err).Msg("Error creating user product")
		return nil, err
	}

	s.publishUserProductEvent(ctx, up, "created")

	return up, nil
}

// UpdateStatus sets the payment status of an association. Both transitions
// are allowed; there is no ordering between UNPAID and PAID.
func (s *UserProductService) UpdateStatus(ctx context.Context, id int, status string) (*entity.UserProduct, error) {
	if status == "" {
		return nil, entity.NewValidationError("Missing or invalid 'status' field")
	}
	if !entity.ValidStatus(status) {
		return nil, entity.NewValidationError(fmt.Sprintf("Invalid status %q, must be UNPAID or PAID", status))
	}

	up, err := s.userProducts.UpdateUserProductStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("User product not found")
		}
		logger.Error().Err(err).Msgf("Error updating user product %d", id)
		return nil, err
	}

	s.publishUserProductEvent(ctx, up, "updated")

	return up, nil
}

// GetByUser returns every association of the user, across all rooms.
// No associations is an empty list, not an error.
func (s *UserProductService) GetByUser(ctx context.Context, userID int) ([]*entity.UserProduct, error) {
	items, err := s.userProducts.ListUserProductsByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing user products for user %d", userID)
		return nil, err
	}
	return items, nil
}

// GetByRoom aggregates the room's associations grouped by user. A room with
// no associations yields an empty aggregation, not an error.
func (s *UserProductService) GetByRoom(ctx context.Context, roomID int) ([]*entity.RoomUserProducts, error) {
	groups, err := s.userProducts.AggregateUserProductsByRoom(ctx, roomID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error aggregating user products for room %d", roomID)
		return nil, err
	}
	return groups, nil
}

// publishUserProductEvent emits the association to Kafka. The row is already
// committed, so publish failures are logged and do not fail the request.
func (s *UserProductService) publishUserProductEvent(ctx context.Context, up *entity.UserProduct, key string) {
	if s.kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(up)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling user product event")
		return
	}

	// user-product-created-1 or user-product-updated-1
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("user-product-%s-%d", key, up.ID)),
		Value: payload,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing user product event for %d", up.ID)
	}
}
