package entity

type Room struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID int    `json:"user_id"`
}

// RoomPage is a paginated slice of rooms visible to a user.
type RoomPage struct {
	Items      []*Room `json:"items"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalCount int     `json:"total_count"`
	TotalPages int     `json:"total_pages"`
}

/*
MySQL schema:
CREATE TABLE rooms (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	user_id INT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE TABLE user_rooms (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	room_id INT NOT NULL,
	UNIQUE KEY user_room_idx (user_id, room_id)
);
*/
