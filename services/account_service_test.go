package services

import (
	"testing"

	"github.com/kartyax/tutorhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerParams(email string) RegisterParams {
	return RegisterParams{
		Name:            "Budi Santoso",
		Email:           email,
		NIM:             "1906123456",
		University:      "Universitas Indonesia",
		Password:        "password123",
		PasswordConfirm: "password123",
		Role:            models.RoleStudent,
	}
}

func TestRegisterRequiresInstitutionalEmail(t *testing.T) {
	db := newTestDB(t)

	_, err := RegisterUser(db, registerParams("student@gmail.com"))
	assert.ErrorIs(t, err, ErrValidation)

	user, err := RegisterUser(db, registerParams("student@ui.ac.id"))
	require.NoError(t, err)
	assert.Equal(t, "student@ui.ac.id", user.Email)
}

func TestRegisterPasswordLength(t *testing.T) {
	db := newTestDB(t)

	p := registerParams("short@ui.ac.id")
	p.Password = "seven77"
	p.PasswordConfirm = "seven77"
	_, err := RegisterUser(db, p)
	assert.ErrorIs(t, err, ErrValidation)

	p = registerParams("eight@ui.ac.id")
	p.Password = "eight888"
	p.PasswordConfirm = "eight888"
	_, err = RegisterUser(db, p)
	assert.NoError(t, err)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	db := newTestDB(t)

	p := registerParams("student@ui.ac.id")
	p.PasswordConfirm = "different123"
	_, err := RegisterUser(db, p)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	_, err := RegisterUser(db, registerParams("student@ui.ac.id"))
	require.NoError(t, err)

	_, err = RegisterUser(db, registerParams("student@ui.ac.id"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterStudentIsVerifiedImmediately(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, registerParams("student@ui.ac.id"))
	require.NoError(t, err)
	assert.Equal(t, models.VerificationApproved, user.VerificationStatus)
	assert.True(t, user.Verified)
	assert.NotEmpty(t, user.Avatar)
}

func TestRegisterTutorCreatesPlaceholderListing(t *testing.T) {
	db := newTestDB(t)

	p := registerParams("tutor@ui.ac.id")
	p.Role = models.RoleTutor
	user, err := RegisterUser(db, p)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, user.VerificationStatus)
	assert.False(t, user.Verified)

	var profile models.TutorProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, int64(defaultTutorPrice), profile.Price)
	assert.Equal(t, defaultTutorSubject, profile.Subject)
	assert.False(t, profile.Verified)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB(t)

	p := registerParams("sneaky@ui.ac.id")
	p.Role = models.RoleAdmin
	_, err := RegisterUser(db, p)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)

	_, err := RegisterUser(db, registerParams("student@ui.ac.id"))
	require.NoError(t, err)

	user, err := Authenticate(db, "student@ui.ac.id", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)

	_, err = Authenticate(db, "student@ui.ac.id", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateNeverProvisionsAccounts(t *testing.T) {
	db := newTestDB(t)

	_, err := Authenticate(db, "nobody@ui.ac.id", "password123")
	assert.ErrorIs(t, err, ErrUnauthorized)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAuthenticateDeactivatedAccount(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, registerParams("student@ui.ac.id"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = Authenticate(db, "student@ui.ac.id", "password123")
	assert.ErrorIs(t, err, ErrForbidden)
}
