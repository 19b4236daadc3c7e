// Package main is the entry point for the character gRPC server
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-character-api",
	Short: "Character choice, equipment and stats gRPC server",
	Long: `rpg-character-api resolves character creation choices, allocates equipment
slots and derives character stats against a YAML rule catalog.`,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(catalogCmd)
}
