package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
)

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db}
}

func (r *RoomRepository) CreateRoom(ctx context.Context, room *entity.Room) (*entity.Room, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO rooms (name, user_id) VALUES (?, ?)`, room.Name, room.UserID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	room.ID = int(id)

	// creator joins their own room
	_, err = tx.ExecContext(ctx, `INSERT INTO user_rooms (user_id, room_id) VALUES (?, ?)`, room.UserID, room.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return room, nil
}

func (r *RoomRepository) GetRoomByID(ctx context.Context, id int) (*entity.Room, error) {
	var room entity.Room
	query := `SELECT id, name, user_id FROM rooms WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.Name, &room.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *RoomRepository) UpdateRoomName(ctx context.Context, id int, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE rooms SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) AddMember(ctx context.Context, userID, roomID int) error {
	// rejoining is a no-op
	query := `INSERT INTO user_rooms (user_id, room_id) VALUES (?, ?) ON DUPLICATE KEY UPDATE room_id = room_id`
	_, err := r.db.ExecContext(ctx, query, userID, roomID)
	return err
}

// roomOrderColumns guards ORDER BY against injection; anything else falls
// back to id.
var roomOrderColumns = map[string]string{
	"id":      "r.id",
	"name":    "r.name",
	"user_id": "r.user_id",
}

func (r *RoomRepository) ListRoomsByUser(ctx context.Context, userID, limit, offset int, orderBy string) ([]*entity.Room, error) {
	column, ok := roomOrderColumns[orderBy]
	if !ok {
		column = "r.id"
	}

	query := fmt.Sprintf(
		`SELECT DISTINCT r.id, r.name, r.user_id FROM rooms r
		 JOIN user_rooms ur ON r.id = ur.room_id
		 WHERE ur.user_id = ?
		 ORDER BY %s
		 LIMIT ? OFFSET ?`, column)
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []*entity.Room{}
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.UserID); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}

func (r *RoomRepository) CountRoomsByUser(ctx context.Context, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT r.id) FROM rooms r JOIN user_rooms ur ON r.id = ur.room_id WHERE ur.user_id = ?`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
