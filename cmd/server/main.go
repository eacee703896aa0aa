package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Rechidesigns/RechiGPT/internal/server/app"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile)
	if err := godotenv.Load(); err != nil {
		logger.Printf(".env not loaded: %v", err)
	}
	application, err := app.New(version, buildDate, logger)
	if err != nil {
		logger.Fatalf("failed to init server: %v", err)
	}
	if err := application.Run(); err != nil {
		logger.Fatalf("server stopped with error: %v", err)
	}
}
