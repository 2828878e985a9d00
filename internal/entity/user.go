package entity

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash, never serialized
	FullName string `json:"full_name,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

/*
MySQL schema:
CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(255) NOT NULL,
	password VARCHAR(255) NOT NULL,
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	photo_url VARCHAR(255) NOT NULL DEFAULT '',
	UNIQUE KEY username_idx (username)
);
*/
