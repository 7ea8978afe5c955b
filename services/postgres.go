package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/chemquest-app/chemquest_api/model"
	"github.com/google/uuid"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "chemquest_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		// Exponential backoff with max delay of 10 seconds
		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.User{},
		&model.PlayerProgress{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		// Check for PostgreSQL-specific errors
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable // 503
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// IsDuplicateError reports whether err is a unique-constraint violation.
func (ds *PostgresService) IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// Transaction runs fn inside a database transaction.
func (ds *PostgresService) Transaction(fn func(tx *gorm.DB) error) error {
	return ds.db.Transaction(fn)
}

// ==================== USER METHODS ====================

// CreateUser inserts inside tx so registration can roll the row back if a
// later step fails.
func (ds *PostgresService) CreateUser(tx *gorm.DB, user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := tx.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *PostgresService) GetUserByID(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmailOrUsername(emailOrUsername string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) UpdateLastLogin(userID, ip string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"last_login_at": &now,
		"last_login_ip": ip,
		"updated_at":    now,
	}).Error
}

func (ds *PostgresService) IsUsernameAvailable(username string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(username) = LOWER(?)", username).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (ds *PostgresService) IsEmailAvailable(email string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// ==================== PLAYER PROGRESS METHODS ====================

func (ds *PostgresService) CreateProgress(tx *gorm.DB, progress *model.PlayerProgress) (*model.PlayerProgress, error) {
	if progress.ID == "" {
		id, _ := uuid.NewV7()
		progress.ID = id.String()
	}
	progress.CreatedAt = time.Now()
	progress.UpdatedAt = time.Now()

	if err := tx.Create(progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (ds *PostgresService) GetProgress(userID string) (*model.PlayerProgress, error) {
	var progress model.PlayerProgress
	if err := ds.db.Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &progress, nil
}

// LockProgress loads a progress row FOR UPDATE inside tx, serializing
// concurrent read-modify-write cycles on the same user.
func (ds *PostgresService) LockProgress(tx *gorm.DB, userID string) (*model.PlayerProgress, error) {
	var progress model.PlayerProgress
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *PostgresService) SaveProgress(tx *gorm.DB, progress *model.PlayerProgress) error {
	progress.UpdatedAt = time.Now()
	return tx.Save(progress).Error
}

// ==================== LEADERBOARD METHODS ====================

type LeaderboardRow struct {
	UserID   string
	Username string
	XP       int
	Rank     string
	Streak   int
}

func (ds *PostgresService) leaderboardQuery() *gorm.DB {
	return ds.db.Table("player_progresses").
		Select("player_progresses.user_id, users.username, player_progresses.xp, player_progresses.rank, player_progresses.streak").
		Joins("JOIN users ON users.id = player_progresses.user_id").
		Where("users.is_active = ?", true)
}

func (ds *PostgresService) GetWeeklyLeaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	weekAgo := time.Now().AddDate(0, 0, -7)

	if err := ds.leaderboardQuery().
		Where("player_progresses.last_activity_at >= ?", weekAgo).
		Order("player_progresses.xp DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

func (ds *PostgresService) GetMonthlyLeaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	monthAgo := time.Now().AddDate(0, -1, 0)

	if err := ds.leaderboardQuery().
		Where("player_progresses.last_activity_at >= ?", monthAgo).
		Order("player_progresses.xp DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

func (ds *PostgresService) GetAllTimeLeaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	if err := ds.leaderboardQuery().
		Order("player_progresses.xp DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return rows, nil
}

func (ds *PostgresService) GetUserPosition(userID string) (int, error) {
	progress, err := ds.GetProgress(userID)
	if err != nil {
		return 0, err
	}

	var ahead int64
	if err := ds.db.Model(&model.PlayerProgress{}).
		Where("xp > ?", progress.XP).Count(&ahead).Error; err != nil {
		return 0, ds.HandleError(err)
	}

	return int(ahead + 1), nil // +1 because position is 0-indexed
}
