package controllers

import (
	"errors"
	"net/http"

	"github.com/UmaKase/umakase-backend/middlewares"
	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

func RoomInfo(c *gin.Context) {
	room, err := services.RoomInfo(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Can't find room")
		return
	}
	utils.RespondOK(c, "success", gin.H{"room": room})
}

type NewRoomInput struct {
	Name          string   `json:"name" binding:"required"`
	Roomies       []string `json:"roomies"`
	FoodIDs       []string `json:"foodIds"`
	IsDefaultRoom bool     `json:"isDefaultRoom"`
}

func NewRoom(c *gin.Context) {
	var input NewRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	creatorID := c.GetString(middlewares.ProfileIDKey)
	room, err := services.CreateRoom(creatorID, input.Name, input.Roomies, input.FoodIDs, input.IsDefaultRoom)
	if errors.Is(err, services.ErrQuotaExceeded) {
		utils.RespondError(c, http.StatusForbidden, "Room creation limit reached")
		return
	}
	if errors.Is(err, services.ErrProfileNotFound) {
		utils.RespondError(c, http.StatusBadRequest, "User Not Found! or Authentication error")
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Room creation failed")
		return
	}

	utils.RespondOK(c, "created", gin.H{"newRoom": room})
}

type AddFoodInput struct {
	RoomID  string   `json:"roomId" binding:"required"`
	FoodIDs []string `json:"foodIds" binding:"required"`
}

func AddFoodToRoom(c *gin.Context) {
	var input AddFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := services.AddFoodsToRoom(input.RoomID, input.FoodIDs)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Add foods failed. Check food Id or room Id")
		return
	}

	services.Hub.BroadcastRoomUpdate(room, services.RoomEventUpdateFood)
	utils.RespondOK(c, "Added Successfully", gin.H{"room": room})
}

type RoomEventInput struct {
	Event         string   `json:"event" binding:"required"`
	RoomID        string   `json:"roomId" binding:"required"`
	NewRoomies    []string `json:"newRoomies"`
	RemoveRoomies []string `json:"removeRoomies"`
}

// RoomEvent dispatches add-member / remove-member / update-food.
func RoomEvent(c *gin.Context) {
	var input RoomEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := services.HandleRoomEvent(input.Event, input.RoomID, input.NewRoomies, input.RemoveRoomies)
	switch {
	case errors.Is(err, services.ErrInvalidEvent):
		utils.RespondError(c, http.StatusBadRequest, "Unknown room event")
		return
	case errors.Is(err, services.ErrMissingEventField):
		utils.RespondError(c, http.StatusBadRequest, "Missing event payload field")
		return
	case errors.Is(err, services.ErrRoomNotFound):
		utils.RespondError(c, http.StatusBadRequest, "Can't find room")
		return
	case errors.Is(err, services.ErrRoomConflict):
		utils.RespondError(c, http.StatusBadRequest, "Room is being updated, try again")
		return
	case err != nil:
		utils.RespondError(c, http.StatusBadRequest, "Room event failed")
		return
	}

	services.Hub.BroadcastRoomUpdate(room, input.Event)
	if room != nil {
		utils.RespondOK(c, "room updated", gin.H{"room": room})
		return
	}
	utils.RespondOK(c, "success", nil)
}
