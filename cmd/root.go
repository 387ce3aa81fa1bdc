package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "companion-backend",
	Short: "Backend service for the companion reminder app",
	Long: `Companion Backend is the REST service behind the companion reminder
application. It stores face images tied to a person's name and relation,
matches uploaded images against the stored ones, keeps free-text reminder
tasks, and answers natural-language task queries by lexical similarity.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
