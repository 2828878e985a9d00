package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
)

// Storage-level sentinels. Services translate these into the HTTP-facing
// error taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
}

type RoomStore interface {
	// CreateRoom inserts the room and the creator's membership atomically.
	CreateRoom(ctx context.Context, room *entity.Room) (*entity.Room, error)
	GetRoomByID(ctx context.Context, id int) (*entity.Room, error)
	UpdateRoomName(ctx context.Context, id int, name string) error
	AddMember(ctx context.Context, userID, roomID int) error
	ListRoomsByUser(ctx context.Context, userID, limit, offset int, orderBy string) ([]*entity.Room, error)
	CountRoomsByUser(ctx context.Context, userID int) (int, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	// DeleteProduct removes the product; associations referencing it are
	// cascaded away by the store.
	DeleteProduct(ctx context.Context, id int) error
	ListProductsByUser(ctx context.Context, userID, limit, offset int, orderBy string) ([]*entity.Product, error)
	CountProductsByUser(ctx context.Context, userID int) (int, error)
}

type UserProductStore interface {
	// CreateUserProduct inserts the association. The unique key over
	// (user_id, product_id) is the authoritative duplicate guard;
	// violating it yields ErrDuplicate.
	CreateUserProduct(ctx context.Context, up *entity.UserProduct) (*entity.UserProduct, error)
	GetUserProductByPair(ctx context.Context, userID, productID int) (*entity.UserProduct, error)
	UpdateUserProductStatus(ctx context.Context, id int, status string) (*entity.UserProduct, error)
	ListUserProductsByUser(ctx context.Context, userID int) ([]*entity.UserProduct, error)
	// AggregateUserProductsByRoom groups associations whose product belongs
	// to the room, one group per user, product ids ascending.
	AggregateUserProductsByRoom(ctx context.Context, roomID int) ([]*entity.RoomUserProducts, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, token string, userID int, ttl time.Duration) error
	// ResolveSession returns the user id the token was issued for, or
	// ErrNotFound for unknown or expired tokens.
	ResolveSession(ctx context.Context, token string) (int, error)
}
