package main

import (
	"os"

	"github.com/OliveiraNt/ltu-generator/cmd"
	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger()
	config.InitI18n()

	if err := cmd.Execute(); err != nil {
		utils.Logger.Error("ltugen failed", "err", err)
		os.Exit(1)
	}
}
