//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/companion-backend/internal/config"
	"github.com/kozaktomas/companion-backend/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestContainer(t *testing.T) (*Pool, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available or container failed to start, skipping integration test: %v", err)
		return nil, func() {}
	}
	if container == nil {
		t.Skip("Docker not available, skipping integration test")
		return nil, func() {}
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dbURL := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	cfg := &config.DatabaseConfig{
		URL:          dbURL,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	pool, err := NewPool(cfg)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to create pool: %v", err)
	}

	// Run migrations
	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		pool.Close()
		container.Terminate(ctx)
	}

	return pool, cleanup
}

func TestImageRepository(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := NewImageRepository(pool)

	grandma := database.StoredImage{
		Description: "grandma at the park",
		Data:        []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02},
		Filename:    "grandma_at_the_park.jpg",
		Name:        "Marie",
		Relation:    "grandmother",
	}

	t.Run("StoreAndMatch", func(t *testing.T) {
		if err := repo.StoreImage(ctx, grandma); err != nil {
			t.Fatalf("Failed to store image: %v", err)
		}

		match, err := repo.MatchImage(ctx, grandma.Data)
		if err != nil {
			t.Fatalf("Failed to match image: %v", err)
		}
		if match.Name != "Marie" {
			t.Errorf("Expected name 'Marie', got '%s'", match.Name)
		}
		if match.Relation != "grandmother" {
			t.Errorf("Expected relation 'grandmother', got '%s'", match.Relation)
		}
		if match.Description != "grandma at the park" {
			t.Errorf("Expected description 'grandma at the park', got '%s'", match.Description)
		}
	})

	t.Run("NoMatchForDifferentBytes", func(t *testing.T) {
		altered := append([]byte{}, grandma.Data...)
		altered[len(altered)-1] ^= 0x01

		_, err := repo.MatchImage(ctx, altered)
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("FirstStoredWinsOnDuplicateBytes", func(t *testing.T) {
		dup := grandma
		dup.ID = ""
		dup.Name = "Pavel"
		dup.Relation = "neighbor"
		if err := repo.StoreImage(ctx, dup); err != nil {
			t.Fatalf("Failed to store duplicate image: %v", err)
		}

		match, err := repo.MatchImage(ctx, grandma.Data)
		if err != nil {
			t.Fatalf("Failed to match image: %v", err)
		}
		if match.Name != "Marie" {
			t.Errorf("Expected earliest match 'Marie', got '%s'", match.Name)
		}
	})

	t.Run("Count", func(t *testing.T) {
		count, err := repo.CountImages(ctx)
		if err != nil {
			t.Fatalf("Failed to count images: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 images, got %d", count)
		}
	})
}

func TestTaskRepository(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()
	repo := NewTaskRepository(pool)

	t.Run("AddAndList", func(t *testing.T) {
		if err := repo.AddTask(ctx, "take medicine at 8pm"); err != nil {
			t.Fatalf("Failed to add task: %v", err)
		}
		if err := repo.AddTask(ctx, "walk the dog"); err != nil {
			t.Fatalf("Failed to add task: %v", err)
		}

		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			t.Fatalf("Failed to list tasks: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("Expected 2 tasks, got %d", len(tasks))
		}
		if tasks[0] != "take medicine at 8pm" {
			t.Errorf("Expected insertion order, got first task '%s'", tasks[0])
		}
	})

	t.Run("DeleteExistingTask", func(t *testing.T) {
		found, err := repo.DeleteTask(ctx, "walk the dog")
		if err != nil {
			t.Fatalf("Failed to delete task: %v", err)
		}
		if !found {
			t.Error("Expected true, got false")
		}

		tasks, _ := repo.ListTasks(ctx)
		if len(tasks) != 1 {
			t.Errorf("Expected 1 task left, got %d", len(tasks))
		}
	})

	t.Run("DeleteMissingTask", func(t *testing.T) {
		found, err := repo.DeleteTask(ctx, "nonexistent")
		if err != nil {
			t.Fatalf("Failed to delete task: %v", err)
		}
		if found {
			t.Error("Expected false, got true")
		}
	})

	t.Run("PurgeOlderThan", func(t *testing.T) {
		// Back-date a task past the retention window.
		_, err := pool.Exec(ctx,
			"INSERT INTO tasks (id, task, created_at) VALUES ($1, $2, $3)",
			uuid.New().String(), "stale reminder", time.Now().UTC().Add(-8*24*time.Hour))
		if err != nil {
			t.Fatalf("Failed to insert back-dated task: %v", err)
		}
		_, err = pool.Exec(ctx,
			"INSERT INTO tasks (id, task, created_at) VALUES ($1, $2, $3)",
			uuid.New().String(), "recent reminder", time.Now().UTC().Add(-6*24*time.Hour))
		if err != nil {
			t.Fatalf("Failed to insert back-dated task: %v", err)
		}

		cutoff := time.Now().UTC().Add(-7 * 24 * time.Hour)
		purged, err := repo.PurgeOlderThan(ctx, cutoff)
		if err != nil {
			t.Fatalf("Failed to purge tasks: %v", err)
		}
		if purged != 1 {
			t.Errorf("Expected 1 purged task, got %d", purged)
		}

		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			t.Fatalf("Failed to list tasks: %v", err)
		}
		for _, task := range tasks {
			if task == "stale reminder" {
				t.Error("Stale task survived the purge")
			}
		}
	})
}

func TestMigrations(t *testing.T) {
	pool, cleanup := setupTestContainer(t)
	if pool == nil {
		return
	}
	defer cleanup()

	ctx := context.Background()

	applied, err := pool.getAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("Failed to get applied migrations: %v", err)
	}

	expectedMigrations := []string{
		"0001_create_images.sql",
		"0002_create_tasks.sql",
	}

	if len(applied) != len(expectedMigrations) {
		t.Errorf("Expected %d migrations, got %d", len(expectedMigrations), len(applied))
	}

	for _, expected := range expectedMigrations {
		if !applied[expected] {
			t.Errorf("Migration '%s' was not applied", expected)
		}
	}
}
