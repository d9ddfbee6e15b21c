package controllers

import (
	"net/http"

	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// RoomSocket upgrades to a websocket and registers the caller with the
// realtime hub. The access token travels in the query string since
// browsers cannot set headers on websocket requests.
func RoomSocket(c *gin.Context) {
	claims, err := services.VerifyAccessToken(c.Query("token"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Error : Invalid token!")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &services.WSClient{ProfileID: claims.ProfileID, Conn: conn}
	services.Hub.Register(client)

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				services.Hub.Unregister(client)
				return
			}
		}
	}()
}
