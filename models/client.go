package models

import (
	"fmt"
	"time"
)

type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"type:varchar(128)" validate:"max=128"`
	LastName  string    `json:"last_name" gorm:"type:varchar(128)" validate:"max=128"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Client) TableName() string {
	return "clients"
}

func (c Client) String() string {
	return fmt.Sprintf("<Client: %s %s>", c.FirstName, c.LastName)
}
