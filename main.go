package main

import (
	"go.uber.org/zap"

	"TIMEGATE/config"
	"TIMEGATE/jobs"
	"TIMEGATE/models"
	"TIMEGATE/routes"
	"TIMEGATE/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer utils.Logger.Sync()

	models.ConnectDatabase(cfg.DatabaseURL, utils.Logger)

	scheduler := jobs.StartDailyDigest(models.DB)
	defer scheduler.Stop()

	r := routes.SetupRouter(models.DB)

	utils.Logger.Info("starting server", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		utils.Logger.Fatal("server stopped", zap.Error(err))
	}
}
