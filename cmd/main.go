package main

import (
	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/routes"
	"github.com/UmaKase/umakase-backend/utils"
)

func main() {
	config.InitConfig()
	config.InitLogger()
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":" + config.Port)
}
