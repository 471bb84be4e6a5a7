package seeders

import (
	"log"
	"time"

	"github.com/safe-steps/prepared_api/model"
	"gorm.io/gorm"
)

// SchoolSeeder handles seeding schools and disaster drills
type SchoolSeeder struct {
	db *gorm.DB
}

// NewSchoolSeeder creates a new school seeder
func NewSchoolSeeder(db *gorm.DB) *SchoolSeeder {
	return &SchoolSeeder{db: db}
}

// SeedSchools seeds the partner school registry
func (s *SchoolSeeder) SeedSchools() error {
	schools := s.getSchools()

	for _, school := range schools {
		var existing model.School
		if err := s.db.Where("id = ?", school.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&school).Error; err != nil {
					log.Printf("Error creating school %s: %v", school.Name, err)
					return err
				}
				log.Printf("Created school: %s", school.Name)
			} else {
				log.Printf("Error checking school %s: %v", school.Name, err)
				return err
			}
		} else {
			log.Printf("School %s already exists, skipping", school.Name)
		}
	}

	log.Println("School seeding completed successfully")
	return nil
}

func (s *SchoolSeeder) getSchools() []model.School {
	return []model.School{
		{ID: "sch_lincoln_elem", Name: "Lincoln Elementary", State: "CA", StudentCount: 420, TeacherCount: 24, IsActive: true},
		{ID: "sch_bayview_middle", Name: "Bayview Middle School", State: "CA", StudentCount: 610, TeacherCount: 38, IsActive: true},
		{ID: "sch_cedar_high", Name: "Cedar Ridge High", State: "WA", StudentCount: 930, TeacherCount: 52, IsActive: true},
		{ID: "sch_prairie_elem", Name: "Prairie View Elementary", State: "TX", StudentCount: 380, TeacherCount: 21, IsActive: true},
		{ID: "sch_gulfside_middle", Name: "Gulfside Middle School", State: "TX", StudentCount: 540, TeacherCount: 31, IsActive: true},
		{ID: "sch_lakeshore_high", Name: "Lakeshore High", State: "FL", StudentCount: 810, TeacherCount: 47, IsActive: true},
	}
}

// SeedDrills seeds a mix of completed and scheduled drills
func (s *SchoolSeeder) SeedDrills() error {
	drills := s.getDrills()

	for _, drill := range drills {
		var existing model.DisasterDrill
		if err := s.db.Where("id = ?", drill.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := s.db.Create(&drill).Error; err != nil {
					log.Printf("Error creating drill %s: %v", drill.ID, err)
					return err
				}
				log.Printf("Created drill: %s (%s)", drill.ID, drill.DrillType)
			} else {
				log.Printf("Error checking drill %s: %v", drill.ID, err)
				return err
			}
		} else {
			log.Printf("Drill %s already exists, skipping", drill.ID)
		}
	}

	log.Println("Drill seeding completed successfully")
	return nil
}

func (s *SchoolSeeder) getDrills() []model.DisasterDrill {
	past := time.Now().AddDate(0, -1, 0)
	upcoming := time.Now().AddDate(0, 1, 0)

	return []model.DisasterDrill{
		{ID: "drill_lincoln_eq_1", SchoolID: "sch_lincoln_elem", DrillType: "earthquake", Status: "completed", CompletionRate: 92.5, Participants: 401, ScheduledDate: &past},
		{ID: "drill_bayview_fire_1", SchoolID: "sch_bayview_middle", DrillType: "fire", Status: "completed", CompletionRate: 88.0, Participants: 575, ScheduledDate: &past},
		{ID: "drill_cedar_eq_1", SchoolID: "sch_cedar_high", DrillType: "earthquake", Status: "completed", CompletionRate: 79.3, Participants: 860, ScheduledDate: &past},
		{ID: "drill_prairie_tornado_1", SchoolID: "sch_prairie_elem", DrillType: "tornado", Status: "completed", CompletionRate: 95.1, Participants: 362, ScheduledDate: &past},
		{ID: "drill_gulfside_hurricane_1", SchoolID: "sch_gulfside_middle", DrillType: "hurricane", Status: "scheduled", ScheduledDate: &upcoming},
		{ID: "drill_lakeshore_fire_1", SchoolID: "sch_lakeshore_high", DrillType: "fire", Status: "completed", CompletionRate: 84.7, ScheduledDate: &past},
		{ID: "drill_fleet_shakeout", DrillType: "earthquake", Status: "completed", CompletionRate: 71.2, Participants: 2400, ScheduledDate: &past},
	}
}
