package database

import (
	"fmt"

	"clap-go/internal/config"
	logging "clap-go/internal/logging"
	"clap-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = gormlogger.Info

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create partial indexes, so we handle those separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Cohort{},
		&models.Participant{},
		&models.Assessment{},
		&models.Question{},
		&models.Option{},
		&models.CorrectAnswer{},
		&models.Attempt{},
		&models.Response{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	openAttemptIndex := `CREATE INDEX IF NOT EXISTS idx_attempts_open ON attempts (participant_id, assessment_id) WHERE status = 'in_progress';`
	if err := DB.Exec(openAttemptIndex).Error; err != nil {
		log.Fatal("Failed to create partial index on attempts table", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}

// SeedBank upserts the question bank from its YAML form: the assessment row,
// every question with its five options, and the answer key. Safe to run on
// every startup; existing rows are updated in place and attempts/responses
// are never touched.
func SeedBank(bank *models.Bank, log *zap.Logger) (*models.Assessment, error) {
	assessment := &models.Assessment{
		Name:       bank.Name,
		Slug:       bank.Slug,
		Categories: bank.Categories,
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Assessment
		findErr := tx.First(&existing, "name = ?", bank.Name).Error
		switch findErr {
		case nil:
			assessment.ID = existing.ID
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"slug":       bank.Slug,
				"categories": assessment.Categories,
			}).Error; err != nil {
				return err
			}
		case gorm.ErrRecordNotFound:
			if err := tx.Create(assessment).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		for _, bq := range bank.Questions {
			question := models.Question{
				AssessmentID: assessment.ID,
				Position:     bq.Position,
				Category:     bq.Category,
				Text:         bq.Text,
			}

			var existingQ models.Question
			findErr := tx.First(&existingQ, "assessment_id = ? AND position = ?", assessment.ID, bq.Position).Error
			switch findErr {
			case nil:
				question.ID = existingQ.ID
				if err := tx.Model(&existingQ).Updates(map[string]interface{}{
					"category": bq.Category,
					"text":     bq.Text,
				}).Error; err != nil {
					return err
				}
			case gorm.ErrRecordNotFound:
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
			default:
				return findErr
			}

			for _, bo := range bq.Options {
				option := models.Option{QuestionID: question.ID, Value: bo.Value, Text: bo.Text}
				if err := tx.Save(&option).Error; err != nil {
					return err
				}
			}

			key := models.CorrectAnswer{
				QuestionID:  question.ID,
				BestOption:  bq.Answer.Best,
				WorstOption: bq.Answer.Worst,
			}
			if err := tx.Save(&key).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Question bank seeded",
		zap.String("assessment", bank.Name),
		zap.Int("questions", len(bank.Questions)),
	)
	return assessment, nil
}
