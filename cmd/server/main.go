package main

import (
	"log"

	_ "famboard/docs"
	"famboard/internal/config"
	"famboard/internal/server"
)

// @title           Family Task Board API
// @version         1.0
// @description     API for managing a household's shared task boards.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
