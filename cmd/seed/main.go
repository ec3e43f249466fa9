package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/edutrack/edutrack-backend/internal/config"
	"github.com/edutrack/edutrack-backend/internal/database"
	"github.com/edutrack/edutrack-backend/internal/logger"
	"github.com/edutrack/edutrack-backend/internal/model"
	"github.com/edutrack/edutrack-backend/internal/repository"
	"github.com/edutrack/edutrack-backend/internal/security"
	"github.com/edutrack/edutrack-backend/internal/service"
	"github.com/edutrack/edutrack-backend/internal/storage"
)

const demoPassword = "password123"

func main() {
	students := flag.Int("students", 10, "Number of demo students to create")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file store")
	}

	hasher := security.NewPasswordHasher(security.Argon2Params{
		Time:    cfg.Argon2.Time,
		Memory:  cfg.Argon2.MemoryKB,
		Threads: cfg.Argon2.Threads,
	})
	userRepo := repository.NewUserRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	userService := service.NewUserService(userRepo, hasher)
	assignmentService := service.NewAssignmentService(assignmentRepo, store, cfg.MaxUploadBytes, log)

	fmt.Println("=== Seeding demo data ===")

	teachers := []string{"Ana Teacher", "Ben Teacher"}
	var created []*model.User
	for _, name := range teachers {
		t, err := ensureUser(ctx, userService, name, model.RoleTeacher)
		if err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("Failed to seed teacher")
		}
		created = append(created, t)
	}

	titles := []string{"Reading Response", "Lab Report", "Problem Set"}
	for i, teacher := range created {
		existing, err := assignmentService.ListForTeacher(ctx, teacher)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list assignments")
		}
		if len(existing) > 0 {
			fmt.Printf("Teacher %s already has assignments, skipping\n", teacher.Name)
			continue
		}
		for j, title := range titles {
			due := time.Now().UTC().AddDate(0, 0, 7*(i+j+1)).Truncate(time.Hour)
			_, err := assignmentService.Create(ctx, teacher, service.NewAssignment{
				Title:       fmt.Sprintf("%s %d", title, j+1),
				Description: fmt.Sprintf("%s set by %s.", title, teacher.Name),
				DueDate:     due,
			})
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to seed assignment")
			}
		}
	}

	successCount := 0
	for i := 1; i <= *students; i++ {
		name := fmt.Sprintf("Student %02d", i)
		if _, err := ensureUser(ctx, userService, name, model.RoleStudent); err != nil {
			fmt.Printf("Failed to create %s: %v\n", name, err)
			continue
		}
		successCount++
	}

	fmt.Printf("\nSeeding completed. %d teachers, %d/%d students. Password: %s\n",
		len(created), successCount, *students, demoPassword)
}

// ensureUser returns the existing account for the demo email or creates it.
func ensureUser(ctx context.Context, users *service.UserService, name string, role model.Role) (*model.User, error) {
	email := strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@edutrack.test"

	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, service.ErrUserNotFound) {
		return nil, err
	}
	return users.CreateUser(ctx, name, email, demoPassword, role)
}
