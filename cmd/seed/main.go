package main

import (
	"fmt"

	"ripple/internal/entity"
	"ripple/internal/repo/persistent"
	"ripple/pkg/config"
	"ripple/pkg/database"
	"ripple/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(db)
	postRepo := persistent.NewPostRepository(db)

	testUsers := []struct {
		name     string
		email    string
		age      int
		role     entity.Role
		password string
	}{
		{"alice1", "alice@test.com", 28, entity.RoleAdmin, "password123"},
		{"bobby1", "bob@test.com", 34, entity.RoleModerator, "password123"},
		{"carol1", "carol@test.com", 22, entity.RoleUser, "password123"},
		{"david1", "david@test.com", 41, entity.RoleUser, "password123"},
	}

	users := make([]*entity.User, 0, len(testUsers))
	for _, tu := range testUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(tu.password), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}

		user := &entity.User{
			Name:         tu.name,
			Email:        tu.email,
			Age:          tu.age,
			Role:         tu.role,
			IsActive:     true,
			PasswordHash: string(hashed),
		}
		if err := userRepo.Create(user); err != nil {
			log.Warn("Skipping user %s: %v", tu.email, err)
			continue
		}
		users = append(users, user)
		log.Info("Created user %s (%s)", user.Name, user.Role)
	}

	if len(users) < 2 {
		log.Info("Not enough fresh users for sample posts, done")
		return
	}

	samplePosts := []struct {
		publisher *entity.User
		content   string
	}{
		{users[0], "First post on the platform, welcome everyone!"},
		{users[1], "Trying out reactions, give this one a like."},
	}

	for _, sp := range samplePosts {
		post := &entity.Post{
			Publisher: sp.publisher.Ref(),
			Content:   sp.content,
		}
		if err := postRepo.Create(post); err != nil {
			log.Warn("Skipping post: %v", err)
			continue
		}

		if err := postRepo.ToggleReaction(post.ID, users[2].ID, entity.ReactLike); err != nil {
			log.Warn("Skipping reaction: %v", err)
		}
		if _, err := postRepo.AddComment(post.ID, users[3].ID, "Nice one!"); err != nil {
			log.Warn("Skipping comment: %v", err)
		}
		log.Info("Created post %s", post.ID)
	}

	log.Info("Database seeded successfully!")
}
