package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"family_law_portal_go/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration (7 days)
	DefaultSessionDuration = 7 * 24 * time.Hour
	// MaxFailedLogins before the account is locked for LockoutDuration
	MaxFailedLogins = 5
	LockoutDuration = 15 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("account role does not match this portal")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountInactive    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Register creates an account with the given role
func Register(db *gorm.DB, name, email, password, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	LogSecurityEvent("REGISTER", user.ID, "role="+role)
	return user, nil
}

// Authenticate checks credentials and that the account holds the role the
// login page is for. Failed password attempts count towards a lockout.
func Authenticate(db *gorm.DB, email, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			LogSecurityEvent("LOGIN_FAILED", "", "unknown email "+email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.IsLocked() {
		LogSecurityEvent("LOGIN_LOCKED", user.ID, "")
		return nil, ErrAccountLocked
	}

	if !VerifyPassword(user.Password, password) {
		registerFailedLogin(db, &user)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	if user.Role != role {
		LogSecurityEvent("LOGIN_ROLE_MISMATCH", user.ID, fmt.Sprintf("have=%s want=%s", user.Role, role))
		return nil, ErrRoleMismatch
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	if err := db.Model(&user).Updates(map[string]interface{}{
		"last_login_at":         now,
		"failed_login_attempts": 0,
		"locked_until":          nil,
	}).Error; err != nil {
		log.Printf("[WARNING] Failed to record login for %s: %v", user.ID, err)
	}

	return &user, nil
}

func registerFailedLogin(db *gorm.DB, user *models.User) {
	user.FailedLoginAttempts++
	updates := map[string]interface{}{"failed_login_attempts": user.FailedLoginAttempts}
	if user.FailedLoginAttempts >= MaxFailedLogins {
		until := time.Now().Add(LockoutDuration)
		user.LockedUntil = &until
		updates["locked_until"] = until
		LogSecurityEvent("ACCOUNT_LOCKED", user.ID, fmt.Sprintf("%d failed attempts", user.FailedLoginAttempts))
	}
	if err := db.Model(user).Updates(updates).Error; err != nil {
		log.Printf("[WARNING] Failed to record failed login for %s: %v", user.ID, err)
	}
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for a user
func CreateSession(db *gorm.DB, user *models.User, ipAddress, userAgent string) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session

	err := db.Preload("User").
		Where("token = ?", token).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		db.Delete(&session)
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a session (logout)
func DeleteSession(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	return nil
}

// CleanupExpiredSessions removes all expired sessions from the database
func CleanupExpiredSessions(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// LogSecurityEvent logs security-related events
func LogSecurityEvent(eventType, userID, details string) {
	log.Printf("[SECURITY] %s | User: %s | Details: %s", eventType, userID, details)
}
