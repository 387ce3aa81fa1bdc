package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage reminder tasks",
	Long:  `Inspect and modify the stored reminder tasks directly, without going through the HTTP API.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Store a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored tasks",
	RunE:  runTaskList,
}

var taskPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete tasks older than the retention window",
	Long: `Delete tasks older than the retention window immediately, without
waiting for the daily janitor run.`,
	RunE: runTaskPurge,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskPurgeCmd)

	taskPurgeCmd.Flags().Int("days", 7, "Purge tasks older than this many days")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	cfg := config.Load()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AddTask(context.Background(), text); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Task stored: %s\n", text)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.ListTasks(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks stored")
		return nil
	}

	for _, t := range tasks {
		fmt.Printf("  %s\n", t)
	}
	fmt.Printf("Total: %d\n", len(tasks))
	return nil
}

func runTaskPurge(cmd *cobra.Command, args []string) error {
	days := mustGetInt(cmd, "days")

	cfg := config.Load()
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	count, err := store.PurgeOlderThan(context.Background(), cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge tasks: %w", err)
	}

	fmt.Printf("Deleted %d tasks older than %d days\n", count, days)
	return nil
}
