package seeders

import (
	"log"

	"github.com/safe-steps/prepared_api/model"
	"gorm.io/gorm"
)

// VideoSeeder handles seeding tutorial videos
type VideoSeeder struct {
	db *gorm.DB
}

// NewVideoSeeder creates a new video seeder
func NewVideoSeeder(db *gorm.DB) *VideoSeeder {
	return &VideoSeeder{db: db}
}

// SeedVideos seeds the tutorial video catalog
func (s *VideoSeeder) SeedVideos() error {
	videos := s.getTutorialVideos()

	for _, video := range videos {
		var existing model.VideoTutorial
		if err := s.db.Where("id = ?", video.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&video).Error; err != nil {
					log.Printf("Error creating video %s: %v", video.Title, err)
					return err
				}
				log.Printf("Created video: %s", video.Title)
			} else {
				log.Printf("Error checking video %s: %v", video.Title, err)
				return err
			}
		} else {
			log.Printf("Video %s already exists, skipping", video.Title)
		}
	}

	log.Println("Video seeding completed successfully")
	return nil
}

func (s *VideoSeeder) getTutorialVideos() []model.VideoTutorial {
	return []model.VideoTutorial{
		{
			ID:          "vid_drop_cover_hold",
			Title:       "Drop, Cover and Hold On",
			Description: "A step-by-step walkthrough of the earthquake response every student should know.",
			VideoRef:    "dQw4w9WgXcQ",
			Duration:    "4:32",
			Category:    "earthquake",
			HoverText:   "The ten-second response",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			ID:          "vid_fire_drill",
			Title:       "Running a Fire Drill",
			Description: "How a well-run school fire drill looks from the hallway to the assembly point.",
			VideoRef:    "fJ9rUzIMcZQ",
			Duration:    "6:15",
			Category:    "fire",
			HoverText:   "Every second counts",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			ID:          "vid_kit_checklist",
			Title:       "Emergency Kit Checklist",
			Description: "Packing a family go-bag item by item, with substitutions for tight budgets.",
			VideoRef:    "ZbZSe6N_BXs",
			Duration:    "8:40",
			Category:    "preparedness",
			HoverText:   "Pack it before you need it",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			ID:          "vid_flood_awareness",
			Title:       "Flood Awareness",
			Description: "Why six inches of moving water is dangerous and how to read local flood maps.",
			VideoRef:    "kXYiU_JCYtU",
			Duration:    "5:08",
			Category:    "flood",
			HoverText:   "Water is stronger than it looks",
			IsActive:    true,
			SortOrder:   4,
		},
	}
}
