package routes

import (
	"github.com/UmaKase/umakase-backend/controllers"
	"github.com/UmaKase/umakase-backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/token/access", controllers.VerifyAccess)
		auth.POST("/token/refresh", controllers.RefreshToken)
		auth.POST("/token/logout", controllers.Logout)
		auth.POST("/reset-password", middlewares.AuthMiddleware(), controllers.ResetPassword)
	}

	room := api.Group("/room")
	room.Use(middlewares.AuthMiddleware())
	{
		room.GET("/info/:id", controllers.RoomInfo)
		room.POST("/new", controllers.NewRoom)
		room.POST("/add-food", controllers.AddFoodToRoom)
		room.POST("/event", controllers.RoomEvent)
	}

	user := api.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.PUT("/profile/email", controllers.UpdateEmail)
		user.GET("/search", controllers.SearchUsers)
		user.POST("/tmp/merge", controllers.MergeTempUser)
	}

	food := api.Group("/food")
	{
		food.GET("/db", controllers.SearchFoods)
		food.POST("/add", middlewares.AuthMiddleware(), controllers.AddFood)
	}

	tag := api.Group("/tag")
	{
		tag.POST("/", controllers.ListTags)
		tag.POST("/search", controllers.SearchTags)
	}

	api.GET("/img/food/:name", controllers.GetFoodImage)
	api.GET("/ws", controllers.RoomSocket)

	return r
}
