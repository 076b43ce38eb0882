package main

import (
	"fmt"
	"os"

	"github.com/openbims/bims-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer application.Stop()

	application.Start()

	port := application.Cfg.Port
	application.Log.Info("Server listening", "port", port)
	if err := application.Router.Run(":" + port); err != nil {
		application.Log.Error("Server failed", "error", err)
	}
}
