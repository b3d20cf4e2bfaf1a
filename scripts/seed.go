//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hugh/plantnet/internal/auth"
	"github.com/hugh/plantnet/internal/database"
	"github.com/hugh/plantnet/internal/database/models"
	"github.com/hugh/plantnet/pkg/config"
	"github.com/hugh/plantnet/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, &cfg.Mongo, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}
	store := database.NewStore(db)

	email := os.Getenv("ADMIN_EMAIL")
	name := os.Getenv("ADMIN_NAME")
	if email == "" {
		email = "admin@example.com"
	}
	if name == "" {
		name = "Admin"
	}

	if _, created, err := store.Users.CreateUserIfAbsent(ctx, models.User{Email: email, Name: name}); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	} else if !created {
		fmt.Printf("User already exists, promoting: %s\n", email)
	}
	if _, err := store.Users.ApproveRole(ctx, email, models.RoleAdmin); err != nil {
		log.Fatalf("failed to promote admin user: %v", err)
	}

	existing, err := store.Plants.ListPlantsBySeller(ctx, email)
	if err != nil {
		log.Fatalf("failed to list plants: %v", err)
	}
	if len(existing) == 0 {
		seller := models.Seller{Name: name, Email: email}
		for _, p := range []models.Plant{
			{Name: "Snake Plant", Category: "Indoor", Price: 18.5, Quantity: 20},
			{Name: "Monstera Deliciosa", Category: "Indoor", Price: 32, Quantity: 8},
			{Name: "Aloe Vera", Category: "Succulent", Price: 9.99, Quantity: 35},
			{Name: "Lavender", Category: "Flowering", Price: 12, Quantity: 15},
		} {
			p.Seller = seller
			if _, err := store.Plants.CreatePlant(ctx, p); err != nil {
				log.Fatalf("failed to create plant %q: %v", p.Name, err)
			}
		}
		fmt.Println("Seeded 4 plants")
	}

	token, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry()).Issue(email)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Printf("Admin user ready!\n")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Token: %s\n", token)
}
