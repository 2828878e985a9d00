package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Yandex-School/SplitBill-backend/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (name, price, room_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Price, product.RoomID)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	var product entity.Product
	query := `SELECT id, name, price, room_id FROM products WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.Name, &product.Price, &product.RoomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	// user_products rows go with it via ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
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

var productOrderColumns = map[string]string{
	"id":      "p.id",
	"name":    "p.name",
	"price":   "p.price",
	"room_id": "p.room_id",
}

func (r *ProductRepository) ListProductsByUser(ctx context.Context, userID, limit, offset int, orderBy string) ([]*entity.Product, error) {
	column, ok := productOrderColumns[orderBy]
	if !ok {
		column = "p.id"
	}

	query := fmt.Sprintf(
		`SELECT p.id, p.name, p.price, p.room_id FROM products p
		 JOIN user_products up ON p.id = up.product_id
		 WHERE up.user_id = ?
		 ORDER BY %s
		 LIMIT ? OFFSET ?`, column)
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		var product entity.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.RoomID); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) CountProductsByUser(ctx context.Context, userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products p JOIN user_products up ON p.id = up.product_id WHERE up.user_id = ?`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
