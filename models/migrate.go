package models

import "gorm.io/gorm"

// AutoMigrate creates the clients, rooms and room_client tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Client{}, &Room{})
}
