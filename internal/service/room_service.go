package service

import (
	"context"
	"errors"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
	"github.com/Yandex-School/SplitBill-backend/internal/repository"
)

type RoomService struct {
	rooms repository.RoomStore
}

// NewRoomService creates a new instance of RoomService.
func NewRoomService(rooms repository.RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// CreateRoom creates a room owned by userID; the creator becomes a member.
func (s *RoomService) CreateRoom(ctx context.Context, userID int, name string) (*entity.Room, error) {
	if name == "" {
		return nil, entity.NewValidationError("name is required")
	}

	room, err := s.rooms.CreateRoom(ctx, &entity.Room{Name: name, UserID: userID})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating room")
		return nil, err
	}

	return room, nil
}

// JoinRoom adds userID to the room's membership. Rejoining is a no-op.
func (s *RoomService) JoinRoom(ctx context.Context, userID, roomID int) error {
	if _, err := s.rooms.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.NewNotFoundError("Room not found")
		}
		logger.Error().Err(err).Msgf("Error getting room by ID %d", roomID)
		return err
	}

	if err := s.rooms.AddMember(ctx, userID, roomID); err != nil {
		logger.Error().Err(err).Msgf("Error joining room %d", roomID)
		return err
	}
	return nil
}

// UpdateRoom renames the room.
func (s *RoomService) UpdateRoom(ctx context.Context, roomID int, name string) error {
	if name == "" {
		return entity.NewValidationError("name is required")
	}

	if err := s.rooms.UpdateRoomName(ctx, roomID, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.NewNotFoundError("room not found")
		}
		logger.Error().Err(err).Msgf("Error updating room %d", roomID)
		return err
	}
	return nil
}

// GetRoom retrieves a room by id.
func (s *RoomService) GetRoom(ctx context.Context, roomID int) (*entity.Room, error) {
	room, err := s.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.NewNotFoundError("Room not found")
		}
		logger.Error().Err(err).Msgf("Error getting room by ID %d", roomID)
		return nil, err
	}
	return room, nil
}

// ListRooms returns a page of the rooms userID is a member of.
func (s *RoomService) ListRooms(ctx context.Context, userID, page, limit int, orderBy string) (*entity.RoomPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.rooms.CountRoomsByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting rooms")
		return nil, err
	}

	items, err := s.rooms.ListRoomsByUser(ctx, userID, limit, (page-1)*limit, orderBy)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing rooms")
		return nil, err
	}

	return &entity.RoomPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}
