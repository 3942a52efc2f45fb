// Package main is the entry point for the gladiator terminal client.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	redisAddress string
	arenaURL     string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "gladiator",
	Short: "Gladiator arena client",
	Long:  `Gladiator is a terminal client for the combat resolution service: fight arena battles, collect loot, and manage versioned save slots.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&redisAddress, "redis-address", "localhost:6379", "Redis endpoint for save slots")
	rootCmd.PersistentFlags().StringVar(&arenaURL, "arena-url", "http://localhost:8000", "combat resolution service base URL")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(savesCmd)
}
