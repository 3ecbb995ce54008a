package controllers

import (
	"roomkeeper/dto"
	"roomkeeper/response"
	"roomkeeper/services"

	"github.com/gin-gonic/gin"
)

type ClientController struct {
	Service services.ClientServiceInterface
}

func NewClientController(svc services.ClientServiceInterface) ClientController {
	return ClientController{Service: svc}
}

// GetClients godoc
// @Summary  List clients
// @Tags     clients
// @Produce  json
// @Param    q   query  string  false  "fuzzy name search"
// @Success  200  {array}   dto.ClientResponse
// @Router   /clients/ [get]
func (cc ClientController) GetClients(c *gin.Context) {
	clients, err := cc.Service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.NewClientResponses(clients))
}

// GetClientDetail godoc
// @Summary  Get a client
// @Tags     clients
// @Produce  json
// @Param    id   path  int  true  "client id"
// @Success  200  {object}  dto.ClientResponse
// @Failure  404  {object}  response.ErrorBody
// @Router   /clients/{id} [get]
func (cc ClientController) GetClientDetail(c *gin.Context) {
	id, err := parseID(c, "Client")
	if err != nil {
		_ = c.Error(err)
		return
	}
	client, err := cc.Service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.NewClientResponse(*client))
}

// CreateClient godoc
// @Summary  Create a client
// @Tags     clients
// @Accept   json
// @Produce  json
// @Param    client  body  dto.CreateClientRequest  true  "client"
// @Success  201  {object}  dto.ClientResponse
// @Failure  400  {object}  response.ErrorBody
// @Router   /clients/ [post]
func (cc ClientController) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	client, err := cc.Service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, dto.NewClientResponse(*client))
}

// UpdateClient godoc
// @Summary  Update a client
// @Tags     clients
// @Accept   json
// @Produce  json
// @Param    id      path  int                      true  "client id"
// @Param    client  body  dto.UpdateClientRequest  true  "fields to change"
// @Success  200  {object}  dto.ClientResponse
// @Failure  400  {object}  response.ErrorBody
// @Failure  404  {object}  response.ErrorBody
// @Router   /clients/{id} [patch]
func (cc ClientController) UpdateClient(c *gin.Context) {
	id, err := parseID(c, "Client")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.UpdateClientRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	client, err := cc.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, dto.NewClientResponse(*client))
}

// DeleteClient godoc
// @Summary  Delete a client
// @Tags     clients
// @Param    id   path  int  true  "client id"
// @Success  204
// @Failure  404  {object}  response.ErrorBody
// @Router   /clients/{id} [delete]
func (cc ClientController) DeleteClient(c *gin.Context) {
	id, err := parseID(c, "Client")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := cc.Service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.NoContent(c)
}
