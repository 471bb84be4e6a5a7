package seeders

import (
	"log"

	"github.com/safe-steps/prepared_api/model"
	"gorm.io/gorm"
)

// ContentSeeder handles seeding learning modules, safety games and achievements
type ContentSeeder struct {
	db *gorm.DB
}

// NewContentSeeder creates a new content seeder
func NewContentSeeder(db *gorm.DB) *ContentSeeder {
	return &ContentSeeder{db: db}
}

// SeedModules seeds the disaster-preparedness learning modules
func (s *ContentSeeder) SeedModules() error {
	modules := s.getLearningModules()

	for _, module := range modules {
		var existing model.LearningModule
		if err := s.db.Where("id = ?", module.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&module).Error; err != nil {
					log.Printf("Error creating module %s: %v", module.Title, err)
					return err
				}
				log.Printf("Created module: %s", module.Title)
			} else {
				log.Printf("Error checking module %s: %v", module.Title, err)
				return err
			}
		} else {
			log.Printf("Module %s already exists, skipping", module.Title)
		}
	}

	log.Println("Module seeding completed successfully")
	return nil
}

func (s *ContentSeeder) getLearningModules() []model.LearningModule {
	return []model.LearningModule{
		{
			ID:          "mod_earthquake_basics",
			Title:       "Earthquake Basics",
			Description: "Understand what causes earthquakes, how to read shaking intensity, and what to do in the first ten seconds.",
			Icon:        "activity",
			XPReward:    50,
			Difficulty:  "beginner",
			HoverText:   "Drop, cover, hold on",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			ID:          "mod_fire_safety",
			Title:       "Fire Safety at School",
			Description: "Evacuation routes, smoke behavior, extinguisher types and the buddy system during a fire drill.",
			Icon:        "flame",
			XPReward:    50,
			Difficulty:  "beginner",
			HoverText:   "Stay low and go",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			ID:          "mod_flood_response",
			Title:       "Flood Response",
			Description: "Reading flood warnings, moving to higher ground and why you never walk through moving water.",
			Icon:        "droplets",
			XPReward:    75,
			Difficulty:  "intermediate",
			HoverText:   "Turn around, don't drown",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			ID:          "mod_emergency_kit",
			Title:       "Build an Emergency Kit",
			Description: "Assemble a 72-hour kit for your family: water, food, first aid, documents and communication plans.",
			Icon:        "package",
			XPReward:    75,
			Difficulty:  "intermediate",
			HoverText:   "72 hours of self-reliance",
			IsActive:    true,
			SortOrder:   4,
		},
		{
			ID:          "mod_severe_weather",
			Title:       "Severe Weather Signals",
			Description: "Tornado watches versus warnings, lightning safety and sheltering decisions under time pressure.",
			Icon:        "cloud-lightning",
			XPReward:    100,
			Difficulty:  "advanced",
			HoverText:   "Watch means prepare, warning means act",
			IsActive:    true,
			SortOrder:   5,
		},
		{
			ID:          "mod_first_aid",
			Title:       "First Aid Fundamentals",
			Description: "Stopping bleeding, treating burns and when to call emergency services instead of acting alone.",
			Icon:        "heart-pulse",
			XPReward:    100,
			Difficulty:  "advanced",
			HoverText:   "Check, call, care",
			IsActive:    true,
			SortOrder:   6,
		},
	}
}

// SeedGames seeds the safety mini-games
func (s *ContentSeeder) SeedGames() error {
	games := s.getSafetyGames()

	for _, game := range games {
		var existing model.SafetyGame
		if err := s.db.Where("id = ?", game.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&game).Error; err != nil {
					log.Printf("Error creating game %s: %v", game.Title, err)
					return err
				}
				log.Printf("Created game: %s", game.Title)
			} else {
				log.Printf("Error checking game %s: %v", game.Title, err)
				return err
			}
		} else {
			log.Printf("Game %s already exists, skipping", game.Title)
		}
	}

	log.Println("Game seeding completed successfully")
	return nil
}

func (s *ContentSeeder) getSafetyGames() []model.SafetyGame {
	return []model.SafetyGame{
		{
			ID:          "game_pack_the_kit",
			Title:       "Pack the Kit",
			Description: "Race the clock to pack a complete emergency kit before the storm arrives.",
			Icon:        "backpack",
			XPReward:    30,
			Difficulty:  "beginner",
			HoverText:   "What goes in the bag?",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			ID:          "game_evacuation_maze",
			Title:       "Evacuation Maze",
			Description: "Find the fastest safe route out of the building while avoiding blocked corridors.",
			Icon:        "map",
			XPReward:    30,
			Difficulty:  "beginner",
			HoverText:   "Know two ways out",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			ID:          "game_hazard_hunt",
			Title:       "Hazard Hunt",
			Description: "Spot the hazards hiding in an ordinary classroom before the timer runs out.",
			Icon:        "search",
			XPReward:    40,
			Difficulty:  "intermediate",
			HoverText:   "Hazards hide in plain sight",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			ID:          "game_triage_rush",
			Title:       "Triage Rush",
			Description: "Prioritize first aid decisions in a simulated emergency with limited supplies.",
			Icon:        "stethoscope",
			XPReward:    50,
			Difficulty:  "advanced",
			HoverText:   "Who needs help first?",
			IsActive:    true,
			SortOrder:   4,
		},
	}
}

// SeedAchievements seeds the achievement catalog
func (s *ContentSeeder) SeedAchievements() error {
	achievements := s.getAchievements()

	for _, achievement := range achievements {
		var existing model.Achievement
		if err := s.db.Where("id = ?", achievement.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&achievement).Error; err != nil {
					log.Printf("Error creating achievement %s: %v", achievement.Name, err)
					return err
				}
				log.Printf("Created achievement: %s", achievement.Name)
			} else {
				log.Printf("Error checking achievement %s: %v", achievement.Name, err)
				return err
			}
		} else {
			log.Printf("Achievement %s already exists, skipping", achievement.Name)
		}
	}

	log.Println("Achievement seeding completed successfully")
	return nil
}

func (s *ContentSeeder) getAchievements() []model.Achievement {
	return []model.Achievement{
		{
			ID:          "ach_first_steps",
			Name:        "First Steps",
			Description: "Complete your first learning module",
			Icon:        "footprints",
			Category:    "progress",
			XPReward:    25,
			IsActive:    true,
		},
		{
			ID:          "ach_prepared_mind",
			Name:        "Prepared Mind",
			Description: "Complete all beginner modules",
			Icon:        "brain",
			Category:    "progress",
			XPReward:    100,
			IsActive:    true,
		},
		{
			ID:          "ach_game_on",
			Name:        "Game On",
			Description: "Finish your first safety game",
			Icon:        "gamepad-2",
			Category:    "games",
			XPReward:    25,
			IsActive:    true,
		},
		{
			ID:          "ach_high_scorer",
			Name:        "High Scorer",
			Description: "Reach a total game score of 1000",
			Icon:        "trophy",
			Category:    "games",
			XPReward:    75,
			IsActive:    true,
		},
		{
			ID:          "ach_level_five",
			Name:        "Rising Responder",
			Description: "Reach level 5",
			Icon:        "trending-up",
			Category:    "progress",
			XPReward:    150,
			IsActive:    true,
		},
	}
}
