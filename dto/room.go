package dto

import (
	"math"

	"roomkeeper/models"
)

// ClientRef points at an existing client by id.
type ClientRef struct {
	ID uint `json:"id"`
}

// CreateRoomRequest là DTO cho request tạo room
type CreateRoomRequest struct {
	Number   *int        `json:"number" binding:"required"`
	Places   int         `json:"places" binding:"min=0"`
	PriceDay float64     `json:"price_day" binding:"min=0,max=99999999.99"`
	Clients  []ClientRef `json:"clients"`
}

// UpdateRoomRequest is a partial update. A non-nil Clients replaces the whole set.
type UpdateRoomRequest struct {
	Number   *int         `json:"number"`
	Places   *int         `json:"places" binding:"omitempty,min=0"`
	PriceDay *float64     `json:"price_day" binding:"omitempty,min=0,max=99999999.99"`
	Clients  *[]ClientRef `json:"clients"`
}

// Fields returns the scalar columns to update.
func (r UpdateRoomRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Number != nil {
		fields["number"] = *r.Number
	}
	if r.Places != nil {
		fields["places"] = *r.Places
	}
	if r.PriceDay != nil {
		fields["price_day"] = *r.PriceDay
	}
	return fields
}

// RoomResponse là DTO cho response của room
type RoomResponse struct {
	ID       uint             `json:"id"`
	Number   int              `json:"number"`
	Places   int              `json:"places"`
	PriceDay float64          `json:"price_day"`
	Clients  []ClientResponse `json:"clients"`
}

// ClientIDs collapses duplicate references, keeping the first occurrence order.
func ClientIDs(refs []ClientRef) []uint {
	seen := make(map[uint]bool, len(refs))
	ids := make([]uint, 0, len(refs))
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		ids = append(ids, ref.ID)
	}
	return ids
}

func NewRoomResponse(room models.Room) RoomResponse {
	return RoomResponse{
		ID:       room.ID,
		Number:   room.Number,
		Places:   room.Places,
		PriceDay: math.Round(room.PriceDay*100) / 100,
		Clients:  NewClientResponses(room.Clients),
	}
}

func NewRoomResponses(rooms []models.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, NewRoomResponse(room))
	}
	return out
}
