package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"smartblog/internal/auth"
	"smartblog/internal/config"
	"smartblog/internal/db"
	"smartblog/internal/model"
	"smartblog/internal/repository"
)

type seedUser struct {
	email    string
	password string
	posts    []seedPost
}

type seedPost struct {
	title   string
	content string
	status  model.PostStatus
}

var seedUsers = []seedUser{
	{
		email:    "alice@example.com",
		password: "correcthorse1",
		posts: []seedPost{
			{
				title:   "Hello World",
				content: `{"root":{"children":[{"children":[{"text":"First post!","type":"text","version":1}],"type":"paragraph","version":1}],"type":"root","version":1}}`,
				status:  model.StatusPublished,
			},
			{
				title:  "Work in progress",
				status: model.StatusDraft,
			},
		},
	},
	{
		email:    "bob@example.com",
		password: "hunter2hunter2",
		posts: []seedPost{
			{
				title:   "Notes on editors",
				content: `{"root":{"children":[],"type":"root","version":1}}`,
				status:  model.StatusDraft,
			},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	created := 0
	for _, su := range seedUsers {
		user, err := userRepo.FindByEmail(ctx, su.email)
		if err == nil {
			log.Printf("User %s already exists, skipping", su.email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up %s: %v", su.email, err)
		}

		hash, err := auth.HashPassword(su.password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.email, err)
		}

		user = &model.User{Email: su.email, PasswordHash: hash, Active: true}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}

		for _, sp := range su.posts {
			content := model.EmptyDocument()
			if sp.content != "" {
				content = model.Document(sp.content)
			}
			post := &model.Post{
				UserID:  user.ID,
				Title:   sp.title,
				Content: content,
				Status:  sp.status,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				log.Fatalf("Failed to create post %q: %v", sp.title, err)
			}
		}

		created++
		log.Printf("Seeded %s with %d post(s)", su.email, len(su.posts))
	}

	log.Printf("Seed complete: %d user(s) created", created)
}
