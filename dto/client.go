package dto

import "roomkeeper/models"

// ClientResponse là DTO cho response của client
type ClientResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateClientRequest là DTO cho yêu cầu tạo mới client
type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"max=128"`
	LastName  string `json:"last_name" binding:"max=128"`
}

// UpdateClientRequest only touches the fields that are present.
type UpdateClientRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=128"`
	LastName  *string `json:"last_name" binding:"omitempty,max=128"`
}

// Fields returns the columns to update.
func (r UpdateClientRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.FirstName != nil {
		fields["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		fields["last_name"] = *r.LastName
	}
	return fields
}

func NewClientResponse(client models.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		FirstName: client.FirstName,
		LastName:  client.LastName,
	}
}

func NewClientResponses(clients []models.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, NewClientResponse(client))
	}
	return out
}
