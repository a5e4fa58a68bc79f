package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"usersadmin/internal/auth"
	"usersadmin/internal/cache"
	"usersadmin/internal/config"
	"usersadmin/internal/db"
	"usersadmin/internal/model"
	"usersadmin/internal/query"
	"usersadmin/internal/repository"
	"usersadmin/internal/service"
)

// seedFile is the layout of the YAML seed file.
type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	ID       string     `yaml:"id"`
	FullName string     `yaml:"full_name"`
	Email    string     `yaml:"email"`
	Role     model.Role `yaml:"role"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	users, err := loadSeedFile(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d users from %s", len(users), cfg.SeedFile)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	profileRepo := repository.NewProfileRepository(gormDB)
	userService := service.NewUserService(
		profileRepo,
		repository.NewUserRoleRepository(gormDB),
		query.NewClient(cacheClient, cfg.UsersCacheTTL),
		service.Options{Atomic: true},
	)

	ctx := context.Background()
	var firstAdmin *model.Profile
	skipped := 0
	for _, u := range users {
		profile, err := ensureProfile(ctx, profileRepo, u)
		if err != nil {
			log.Printf("Skipping %s: %v", u.Email, err)
			skipped++
			continue
		}
		role := u.Role
		if role == "" {
			role = model.DefaultRole
		}
		if err := userService.UpdateRole(ctx, profile.ID, role); err != nil {
			log.Printf("Skipping role of %s: %v", u.Email, err)
			skipped++
			continue
		}
		if role == model.RoleAdmin && firstAdmin == nil {
			firstAdmin = profile
		}
	}
	log.Printf("Seed completed: %d users, %d skipped", len(users)-skipped, skipped)

	if firstAdmin != nil {
		token, err := auth.NewJWTService(cfg.JWTSecret).GenerateAccessToken(firstAdmin.ID, firstAdmin.Email)
		if err != nil {
			log.Fatalf("Failed to sign admin token: %v", err)
		}
		log.Printf("Admin token for %s (valid %s):", firstAdmin.Email, auth.AccessTokenExpiry)
		fmt.Println(token)
	}
}

func loadSeedFile(path string) ([]seedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return sf.Users, nil
}

func ensureProfile(ctx context.Context, repo repository.ProfileRepository, u seedUser) (*model.Profile, error) {
	if u.Email == "" {
		return nil, errors.New("email is required")
	}
	if u.ID != "" {
		existing, err := repo.FindByID(ctx, u.ID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	profile := &model.Profile{ID: u.ID, Email: u.Email, CreatedAt: time.Now()}
	if u.FullName != "" {
		profile.FullName = &u.FullName
	}
	if err := repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}
