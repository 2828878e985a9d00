package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
)

type UserProductRepository struct {
	db *sql.DB
}

func NewUserProductRepository(db *sql.DB) *UserProductRepository {
	return &UserProductRepository{db}
}

func (r *UserProductRepository) CreateUserProduct(ctx context.Context, up *entity.UserProduct) (*entity.UserProduct, error) {
	query := `INSERT INTO user_products (user_id, product_id, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, up.UserID, up.ProductID, up.Status)
	if err != nil {
		// the unique key over (user_id, product_id) is the authoritative
		// guard against concurrent duplicate creates
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	up.ID = int(id)
	return up, nil
}

func (r *UserProductRepository) GetUserProductByPair(ctx context.Context, userID, productID int) (*entity.UserProduct, error) {
	var up entity.UserProduct
	query := `SELECT id, user_id, product_id, status FROM user_products WHERE user_id = ? AND product_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&up.ID, &up.UserID, &up.ProductID, &up.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &up, nil
}

func (r *UserProductRepository) UpdateUserProductStatus(ctx context.Context, id int, status string) (*entity.UserProduct, error) {
	// MySQL reports zero affected rows when the status is unchanged, so
	// re-read instead of trusting RowsAffected for existence.
	_, err := r.db.ExecContext(ctx, `UPDATE user_products SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}

	var up entity.UserProduct
	err = r.db.QueryRowContext(ctx, `SELECT id, user_id, product_id, status FROM user_products WHERE id = ?`, id).
		Scan(&up.ID, &up.UserID, &up.ProductID, &up.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &up, nil
}

func (r *UserProductRepository) ListUserProductsByUser(ctx context.Context, userID int) ([]*entity.UserProduct, error) {
	query := `SELECT id, user_id, product_id, status FROM user_products WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*entity.UserProduct{}
	for rows.Next() {
		var up entity.UserProduct
		if err := rows.Scan(&up.ID, &up.UserID, &up.ProductID, &up.Status); err != nil {
			return nil, err
		}
		items = append(items, &up)
	}

	return items, rows.Err()
}

func (r *UserProductRepository) AggregateUserProductsByRoom(ctx context.Context, roomID int) ([]*entity.RoomUserProducts, error) {
	query := `SELECT up.user_id, up.product_id FROM user_products up
		 JOIN products p ON up.product_id = p.id
		 WHERE p.room_id = ?
		 ORDER BY up.user_id, up.product_id`
	rows, err := r.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*entity.RoomUserProducts{}
	for rows.Next() {
		var userID, productID int
		if err := rows.Scan(&userID, &productID); err != nil {
			return nil, err
		}
		if n := len(groups); n > 0 && groups[n-1].UserID == userID {
			groups[n-1].ProductIDs = append(groups[n-1].ProductIDs, productID)
			continue
		}
		groups = append(groups, &entity.RoomUserProducts{UserID: userID, ProductIDs: []int{productID}})
	}

	return groups, rows.Err()
}
