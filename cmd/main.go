package main

import (
	"log"
	"os"

	"github.com/rizkyab/partkatalog/internal/config"
	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/server"
	"github.com/rizkyab/partkatalog/internal/user"
	"github.com/rizkyab/partkatalog/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := cfg.ValidateSecret(); err != nil {
		log.Fatal("❌ JWT configuration error: ", err)
	}
	log.Println("✅ JWT secret validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed: ", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== STORAGE SETUP ==========
	if err := utils.InitLocalStorage(); err != nil {
		log.Fatal("❌ Failed to initialize local storage: ", err)
	}

	if os.Getenv("USE_S3") == "true" {
		s3Bucket := os.Getenv("S3_BUCKET")
		s3Region := os.Getenv("S3_REGION")
		cloudfrontURL := os.Getenv("CLOUDFRONT_URL")

		if s3Bucket != "" && s3Region != "" {
			if err := utils.InitS3(s3Bucket, s3Region, cloudfrontURL); err != nil {
				log.Println("⚠️  S3 initialization failed:", err)
				log.Println("⚠️  Falling back to local storage")
				utils.SetStorageMode(true)
			} else {
				log.Printf("☁️  Using S3: %s (region: %s)", s3Bucket, s3Region)
			}
		} else {
			log.Println("⚠️  USE_S3=true but S3_BUCKET or S3_REGION not configured")
			utils.SetStorageMode(true)
		}
	} else {
		utils.SetStorageMode(true)
	}
	log.Printf("💾 Storage mode: %s", utils.GetStorageMode())

	// ========== SEED DEFAULT DATA ==========
	if err := user.SeedDefaultAccounts(); err != nil {
		log.Println("⚠️  Failed to seed default accounts:", err)
	} else {
		log.Println("✅ Default accounts ready")
	}

	// ========== START SERVER ==========
	app := server.New(cfg)

	log.Printf("🚀 Part catalog server starting on %s", cfg.ServerAddr)
	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server: ", err)
	}
}
