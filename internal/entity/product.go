package entity

// Product is a priced item belonging to exactly one room.
// Price is in currency minor units.
type Product struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	RoomID int    `json:"room_id"`
}

// ProductPage is a paginated slice of products associated with a user.
type ProductPage struct {
	Items      []*Product `json:"items"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalCount int        `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

/*
MySQL schema:
CREATE TABLE products (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price BIGINT NOT NULL,
	room_id INT NOT NULL,
	UNIQUE KEY name_room_idx (name, room_id),
	FOREIGN KEY (room_id) REFERENCES rooms(id)
);
*/
