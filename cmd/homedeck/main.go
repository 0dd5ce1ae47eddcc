package main

import (
	"log"

	"github.com/MrSnakeDoc/homedeck/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ homedeck failed to start: %v", err)
	}
}
