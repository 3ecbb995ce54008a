package routes

import (
	"net/http"

	"roomkeeper/controllers"
	_ "roomkeeper/docs"
	"roomkeeper/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes registers the API. A nil melody disables the /ws change feed.
func SetupRoutes(router *gin.Engine, clientService services.ClientServiceInterface, roomService services.RoomServiceInterface, m *melody.Melody) {
	clientController := controllers.NewClientController(clientService)
	roomController := controllers.NewRoomController(roomService)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if m != nil {
		router.GET("/ws", func(c *gin.Context) {
			m.HandleRequest(c.Writer, c.Request)
		})
	}

	clients := router.Group("/clients")
	clients.GET("/", clientController.GetClients)
	clients.POST("/", clientController.CreateClient)
	clients.GET("/:id", clientController.GetClientDetail)
	clients.PATCH("/:id", clientController.UpdateClient)
	clients.DELETE("/:id", clientController.DeleteClient)

	rooms := router.Group("/rooms")
	rooms.GET("/", roomController.GetAllRooms)
	rooms.POST("/", roomController.CreateRoom)
	rooms.GET("/:id", roomController.GetRoomDetail)
	rooms.PATCH("/:id", roomController.UpdateRoom)
	rooms.DELETE("/:id", roomController.DeleteRoom)
}
