package controllers

import (
	"roomkeeper/dto"
	"roomkeeper/response"
	"roomkeeper/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Service services.RoomServiceInterface
}

func NewRoomController(svc services.RoomServiceInterface) RoomController {
	return RoomController{Service: svc}
}

// GetAllRooms godoc
// @Summary  List rooms with their clients
// @Tags     rooms
// @Produce  json
// @Success  200  {array}  dto.RoomResponse
// @Router   /rooms/ [get]
func (rc RoomController) GetAllRooms(c *gin.Context) {
	rooms, err := rc.Service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.NewRoomResponses(rooms))
}

// GetRoomDetail godoc
// @Summary  Get a room
// @Tags     rooms
// @Produce  json
// @Param    id   path  int  true  "room id"
// @Success  200  {object}  dto.RoomResponse
// @Failure  404  {object}  response.ErrorBody
// @Router   /rooms/{id} [get]
func (rc RoomController) GetRoomDetail(c *gin.Context) {
	id, err := parseID(c, "Room")
	if err != nil {
		_ = c.Error(err)
		return
	}
	room, err := rc.Service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.NewRoomResponse(*room))
}

// CreateRoom godoc
// @Summary  Create a room
// @Description  The number of clients must not exceed places. Room numbers are unique.
// @Tags     rooms
// @Accept   json
// @Produce  json
// @Param    room  body  dto.CreateRoomRequest  true  "room"
// @Success  201  {object}  dto.RoomResponse
// @Failure  400  {object}  response.ErrorBody
// @Router   /rooms/ [post]
func (rc RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	room, err := rc.Service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, dto.NewRoomResponse(*room))
}

// UpdateRoom godoc
// @Summary  Update a room
// @Description  A clients list replaces the room's clients.
// @Tags     rooms
// @Accept   json
// @Produce  json
// @Param    id    path  int                    true  "room id"
// @Param    room  body  dto.UpdateRoomRequest  true  "fields to change"
// @Success  200  {object}  dto.RoomResponse
// @Failure  400  {object}  response.ErrorBody
// @Failure  404  {object}  response.ErrorBody
// @Router   /rooms/{id} [patch]
func (rc RoomController) UpdateRoom(c *gin.Context) {
	id, err := parseID(c, "Room")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.UpdateRoomRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	room, err := rc.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.NewRoomResponse(*room))
}

// DeleteRoom godoc
// @Summary  Delete a room
// @Tags     rooms
// @Param    id   path  int  true  "room id"
// @Success  204
// @Failure  404  {object}  response.ErrorBody
// @Router   /rooms/{id} [delete]
func (rc RoomController) DeleteRoom(c *gin.Context) {
	id, err := parseID(c, "Room")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := rc.Service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.NoContent(c)
}
