package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/yahipe-backend/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cmd := newRootCmd(config.Load)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
