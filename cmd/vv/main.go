// Package main is the entry point for the vv CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Micfood1011/ApartmentManagementSystem/internal/cli"
)

func main() {
	// A .env next to the binary may hold VV_DB, VV_USERNAME and VV_PASSWORD.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
