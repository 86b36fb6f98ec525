package main

import (
	"fmt"
	"log"

	"gamecatalog/domain"
	"gamecatalog/internal/service/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func migrate() error {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		return err
	}
	// AutoMigrate also creates the rating/price check constraints declared
	// on the Game model, so out-of-range values are rejected by the store
	// even if a write bypasses payload validation.
	if err := db.AutoMigrate(&domain.User{}, &domain.Game{}); err != nil {
		return err
	}
	fmt.Println("Database migrated")
	return nil
}

func main() {
	if err := migrate(); err != nil {
		log.Fatal(err)
	}
}
