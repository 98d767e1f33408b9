package db

import (
	"log"
	"os"

	"github.com/vocably-dev/vocably/internal/models"
	"github.com/vocably-dev/vocably/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.VocabularyWord{},
		&models.Assignment{},
		&models.Submission{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDatabase creates the initial admin account and a few starter words on a
// fresh install. It is a no-op once any user exists.
func SeedDatabase() error {
	var count int64

	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(passwordHash),
		Name:         "Administrator",
		Role:         types.RoleAdmin,
		WordsPerDay:  10,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	learner := models.User{
		Username:     "demo",
		PasswordHash: string(passwordHash),
		Name:         "Demo Learner",
		Role:         types.RoleUser,
		WordsPerDay:  5,
	}

	if err := DB.Create(&learner).Error; err != nil {
		return err
	}

	starterWords := []models.VocabularyWord{
		{
			Word:          "resilient",
			CEFR:          "B2",
			PartOfSpeech:  "adjective",
			Pronunciation: "/rɪˈzɪliənt/",
			Definition:    "able to recover quickly from difficult conditions",
			Examples: datatypes.NewJSONSlice([]string{
				"She remained resilient despite the setbacks.",
				"The resilient economy bounced back within a year.",
			}),
			CreatedByID: &admin.ID,
		},
		{
			Word:          "gather",
			CEFR:          "A2",
			PartOfSpeech:  "verb",
			Pronunciation: "/ˈɡæðər/",
			Definition:    "to come together or collect things in one place",
			Examples: datatypes.NewJSONSlice([]string{
				"We gather in the park every Sunday.",
				"Please gather your books before leaving.",
			}),
			CreatedByID: &admin.ID,
		},
		{
			Word:          "meticulous",
			CEFR:          "C1",
			PartOfSpeech:  "adjective",
			Pronunciation: "/məˈtɪkjələs/",
			Definition:    "showing great attention to detail; very careful",
			Examples: datatypes.NewJSONSlice([]string{
				"He kept meticulous records of every transaction.",
				"The restoration required meticulous planning.",
			}),
			CreatedByID: &admin.ID,
		},
	}

	if err := DB.Create(&starterWords).Error; err != nil {
		return err
	}

	log.Printf("Seeded database with admin and demo accounts and %d starter words", len(starterWords))
	return nil
}
