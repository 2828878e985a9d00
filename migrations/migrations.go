package migrations

import (
	"database/sql"
	"time"
)

// Table creation order matters: rooms references users, products references
// rooms, user_products and user_rooms reference both sides.
var tables = []string{
	`
		CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			photo_url VARCHAR(255) NOT NULL DEFAULT '',
			UNIQUE KEY username_idx (username)
		);
	`,
	`
		CREATE TABLE IF NOT EXISTS rooms (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			user_id INT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
	`,
	`
		CREATE TABLE IF NOT EXISTS user_rooms (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			room_id INT NOT NULL,
			UNIQUE KEY user_room_idx (user_id, room_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (room_id) REFERENCES rooms(id)
		);
	`,
	`
		CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price BIGINT NOT NULL,
			room_id INT NOT NULL,
			UNIQUE KEY name_room_idx (name, room_id),
			FOREIGN KEY (room_id) REFERENCES rooms(id)
		);
	`,
	`
		CREATE TABLE IF NOT EXISTS user_products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'UNPAID',
			UNIQUE KEY user_product_idx (user_id, product_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
		);
	`,
}

// AutoMigrate creates all tables if they do not exist.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range tables {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
