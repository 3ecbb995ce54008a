package models

import (
	"fmt"
	"time"
)

// Room is a bookable room. Clients are linked through the room_client join table.
type Room struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Number    int       `json:"number" gorm:"uniqueIndex;not null"`
	Places    int       `json:"places" validate:"min=0"`
	PriceDay  float64   `json:"price_day" gorm:"type:numeric(10,2)" validate:"min=0,max=99999999.99"`
	Clients   []Client  `json:"clients" gorm:"many2many:room_client;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Room) TableName() string {
	return "rooms"
}

// HasCapacity reports whether n clients fit into the room.
func (r *Room) HasCapacity(n int) bool {
	return n <= r.Places
}

func (r Room) String() string {
	return fmt.Sprintf("<Room: №%d %d places, %.2f$ per day>", r.Number, r.Places, r.PriceDay)
}
