package entity

// Payment statuses of a user-product association.
const (
	StatusUnpaid = "UNPAID"
	StatusPaid   = "PAID"
)

// ValidStatus reports whether s is one of the two payment statuses.
func ValidStatus(s string) bool {
	return s == StatusUnpaid || s == StatusPaid
}

// UserProduct links a user to a product they owe or have settled.
// One row per (user, product) pair.
type UserProduct struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	ProductID int    `json:"product_id"`
	Status    string `json:"status"`
}

// RoomUserProducts is one group of a room-scoped aggregation: the products
// a single user is associated with inside that room.
type RoomUserProducts struct {
	UserID     int   `json:"user_id"`
	ProductIDs []int `json:"product_ids"`
}

/*
MySQL schema:
CREATE TABLE user_products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	product_id INT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'UNPAID',
	UNIQUE KEY user_product_idx (user_id, product_id),
	FOREIGN KEY (user_id) REFERENCES users(id),
	FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
);
*/
