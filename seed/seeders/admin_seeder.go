package seeders

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/safe-steps/prepared_api/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminSeeder handles seeding the default admin user and platform settings
type AdminSeeder struct {
	db *gorm.DB
}

// NewAdminSeeder creates a new admin seeder
func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates a default admin account and registers it in the admin
// registry. The password comes from SEED_ADMIN_PASSWORD and defaults to a
// development-only value.
func (s *AdminSeeder) SeedAdmin() error {
	var existing model.User
	if err := s.db.Where("username = ?", "admin").First(&existing).Error; err == nil {
		log.Println("Admin user already exists, skipping admin seeding")
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		ID:          uuid.New().String(),
		Email:       "admin@safesteps.dev",
		Username:    "admin",
		Password:    string(hashedPassword),
		DisplayName: "Platform Admin",
		IsActive:    true,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return err
	}

	permissions, _ := json.Marshal([]string{"stats", "settings", "videos", "alerts"})

	adminID, _ := uuid.NewV7()
	registry := model.AdminUser{
		ID:          adminID.String(),
		UserID:      admin.ID,
		AdminLevel:  "super",
		Permissions: permissions,
	}

	if err := s.db.Create(&registry).Error; err != nil {
		log.Printf("Error registering admin user: %v", err)
		return err
	}

	log.Printf("Created admin user: %s", admin.Email)
	return nil
}

// SeedSettings seeds the default platform settings
func (s *AdminSeeder) SeedSettings() error {
	settings := s.getDefaultSettings()

	for _, setting := range settings {
		var existing model.AdminSetting
		if err := s.db.Where("key = ?", setting.Key).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&setting).Error; err != nil {
					log.Printf("Error creating setting %s: %v", setting.Key, err)
					return err
				}
				log.Printf("Created setting: %s", setting.Key)
			} else {
				log.Printf("Error checking setting %s: %v", setting.Key, err)
				return err
			}
		} else {
			log.Printf("Setting %s already exists, skipping", setting.Key)
		}
	}

	log.Println("Settings seeding completed successfully")
	return nil
}

func (s *AdminSeeder) getDefaultSettings() []model.AdminSetting {
	return []model.AdminSetting{
		{
			ID:          newSettingID(),
			Key:         "maintenance_mode",
			Value:       json.RawMessage(`{"enabled":false}`),
			SettingType: "flag",
			Description: "Put the platform into read-only maintenance mode",
			IsPublic:    true,
		},
		{
			ID:          newSettingID(),
			Key:         "registration_open",
			Value:       json.RawMessage(`{"enabled":true}`),
			SettingType: "flag",
			Description: "Allow new account registration",
			IsPublic:    true,
		},
		{
			ID:          newSettingID(),
			Key:         "xp_per_level",
			Value:       json.RawMessage(`{"value":500}`),
			SettingType: "threshold",
			Description: "XP required to advance one level",
			IsPublic:    false,
		},
		{
			ID:          newSettingID(),
			Key:         "alert_channels",
			Value:       json.RawMessage(`{"dashboard":true,"email":true,"sms":false}`),
			SettingType: "toggles",
			Description: "Delivery channels for broadcast alerts",
			IsPublic:    false,
		},
	}
}

func newSettingID() string {
	id, _ := uuid.NewV7()
	return id.String()
}
