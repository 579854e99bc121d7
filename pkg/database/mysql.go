package database

import (
	"fmt"
	"log"
	"poe_tracker_backend/internal/config"
	"poe_tracker_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, admin *config.AdminConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedAdmin(db, admin); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs AutoMigrate for every domain table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.StudyLevel{},
		&model.Course{},
		&model.ClassIntake{},
		&model.Module{},
		&model.Unit{},
		&model.Task{},
		&model.Assignment{},
		&model.Submission{},
		&model.SubmissionFile{},
		&model.Assessment{},
		&model.Verification{},
		&model.Notification{},
		&model.ActivityLog{},
	)
}

// SeedAdmin creates the default administrator when the users table is
// empty, so a fresh install can log in.
func SeedAdmin(db *gorm.DB, admin *config.AdminConfig) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || admin == nil || admin.Password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: admin.Username,
		Password: string(hashed),
		Name:     "Administrator",
		Email:    admin.Email,
		Role:     model.Admin,
		Active:   true,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("Seeded default admin account %q", admin.Username)
	return nil
}
