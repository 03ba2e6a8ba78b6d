// @title First 20 Hours API
// @version 1.0
// @description Backend for the First 20 Hours skill learning app.

// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"first20_backend/internal/cli"
	"fmt"
	"os"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
