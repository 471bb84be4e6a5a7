package seeders

import (
	"log"

	"github.com/safe-steps/prepared_api/services"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.db.AutoMigrate(services.Models()...); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	contentSeeder := NewContentSeeder(s.db)
	if err := contentSeeder.SeedModules(); err != nil {
		log.Printf("Module seeding failed: %v", err)
		return err
	}
	if err := contentSeeder.SeedGames(); err != nil {
		log.Printf("Game seeding failed: %v", err)
		return err
	}
	if err := contentSeeder.SeedAchievements(); err != nil {
		log.Printf("Achievement seeding failed: %v", err)
		return err
	}

	videoSeeder := NewVideoSeeder(s.db)
	if err := videoSeeder.SeedVideos(); err != nil {
		log.Printf("Video seeding failed: %v", err)
		return err
	}

	schoolSeeder := NewSchoolSeeder(s.db)
	if err := schoolSeeder.SeedSchools(); err != nil {
		log.Printf("School seeding failed: %v", err)
		return err
	}
	if err := schoolSeeder.SeedDrills(); err != nil {
		log.Printf("Drill seeding failed: %v", err)
		return err
	}

	adminSeeder := NewAdminSeeder(s.db)
	if err := adminSeeder.SeedSettings(); err != nil {
		log.Printf("Settings seeding failed: %v", err)
		return err
	}
	if err := adminSeeder.SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedContentOnly seeds only modules, games and achievements
func (s *MainSeeder) SeedContentOnly() error {
	contentSeeder := NewContentSeeder(s.db)
	if err := contentSeeder.SeedModules(); err != nil {
		return err
	}
	if err := contentSeeder.SeedGames(); err != nil {
		return err
	}
	return contentSeeder.SeedAchievements()
}

// SeedVideosOnly seeds only tutorial videos
func (s *MainSeeder) SeedVideosOnly() error {
	videoSeeder := NewVideoSeeder(s.db)
	return videoSeeder.SeedVideos()
}

// SeedSchoolsOnly seeds only schools and drills
func (s *MainSeeder) SeedSchoolsOnly() error {
	schoolSeeder := NewSchoolSeeder(s.db)
	if err := schoolSeeder.SeedSchools(); err != nil {
		return err
	}
	return schoolSeeder.SeedDrills()
}

// SeedSettingsOnly seeds only platform settings
func (s *MainSeeder) SeedSettingsOnly() error {
	adminSeeder := NewAdminSeeder(s.db)
	return adminSeeder.SeedSettings()
}

// SeedAdminOnly seeds only the default admin user
func (s *MainSeeder) SeedAdminOnly() error {
	adminSeeder := NewAdminSeeder(s.db)
	return adminSeeder.SeedAdmin()
}
