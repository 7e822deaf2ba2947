package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kartyax/tutorhub/models"
	"github.com/kartyax/tutorhub/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InstitutionalDomainSuffix is the university email suffix every
// account must carry.
const InstitutionalDomainSuffix = ".ac.id"

const minPasswordLength = 8

// Placeholder tutor listing values, filled in by the tutor later.
const (
	defaultTutorSubject  = "General"
	defaultTutorLecturer = "Not set"
	defaultTutorPrice    = 75000
	defaultTutorBio      = "Experienced tutor ready to help with your coursework."
)

type RegisterParams struct {
	Name            string
	Email           string
	NIM             string
	University      string
	Password        string
	PasswordConfirm string
	Role            string
}

// RegisterUser creates a user account and, for the tutor role, its
// catalog listing with placeholder defaults. Role is fixed at creation.
func RegisterUser(db *gorm.DB, p RegisterParams) (*models.User, error) {
	if !strings.Contains(p.Email, "@") || !strings.HasSuffix(p.Email, InstitutionalDomainSuffix) {
		return nil, fmt.Errorf("%w: email must use a university (%s) domain", ErrValidation, InstitutionalDomainSuffix)
	}
	if p.Password != p.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if len(p.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if p.Role == "" {
		p.Role = models.RoleStudent
	}
	if p.Role != models.RoleStudent && p.Role != models.RoleTutor {
		return nil, fmt.Errorf("%w: role must be student or tutor", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	newUser := models.User{
		Name:       p.Name,
		Email:      p.Email,
		NIM:        p.NIM,
		University: p.University,
		Password:   string(hashedPassword),
		Role:       p.Role,
		Avatar:     utils.AvatarURL(p.Name),
		IsActive:   true,
	}
	if p.Role == models.RoleStudent {
		newUser.VerificationStatus = models.VerificationApproved
		newUser.Verified = true
	} else {
		newUser.VerificationStatus = models.VerificationPending
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", p.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		if count > 0 {
			return fmt.Errorf("%w: email is already registered", ErrValidation)
		}

		if err := tx.Create(&newUser).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email is already registered", ErrValidation)
			}
			return fmt.Errorf("%w: %v", ErrStore, err)
		}

		if p.Role == models.RoleTutor {
			profile := models.TutorProfile{
				UserID:     newUser.ID,
				Name:       p.Name,
				University: p.University,
				Subject:    defaultTutorSubject,
				Lecturer:   defaultTutorLecturer,
				Price:      defaultTutorPrice,
				Avatar:     newUser.Avatar,
				Bio:        defaultTutorBio,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStore, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &newUser, nil
}

// Authenticate verifies credentials and returns the user record.
// A failed login never provisions an account.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	if !strings.Contains(email, "@") || !strings.HasSuffix(email, InstitutionalDomainSuffix) {
		return nil, fmt.Errorf("%w: email must use a university (%s) domain", ErrValidation, InstitutionalDomainSuffix)
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", ErrForbidden)
	}

	return &user, nil
}
