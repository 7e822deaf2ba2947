package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// releasedEarnings confirms and releases one session so the tutor has a
// withdrawable payout.
func releasedEarnings(t *testing.T, db *gorm.DB, student *models.User, tutorUser *models.User, tutor *models.TutorProfile) int64 {
	t.Helper()

	session := seedSession(t, db, student, tutor, models.SessionPending)
	txn, err := ConfirmSession(db, session.ID, tutorUser.ID, 0.1)
	require.NoError(t, err)
	require.NoError(t, ReleaseEscrow(db, txn.ID))
	return txn.TutorAmount
}

func TestAvailableBalanceCountsOnlyReleased(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	_, tutor := seedTutor(t, db, 100000)

	held := seedSession(t, db, student, tutor, models.SessionConfirmed)
	seedHeldTransaction(t, db, held, 10000)

	balance, err := AvailableBalance(db, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance, "held escrow is not withdrawable")
}

func TestRequestWithdrawalInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	tutorUser, _ := seedTutor(t, db, 100000)

	_, err := RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        50000,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequestWithdrawalWithinBalance(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	payout := releasedEarnings(t, db, student, tutorUser, tutor)

	withdrawal, err := RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        payout,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalPending, withdrawal.Status)

	balance, err := AvailableBalance(db, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance, "a pending withdrawal already reserves the amount")

	_, err = RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        1,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProcessWithdrawal(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	payout := releasedEarnings(t, db, student, tutorUser, tutor)
	admin := uuid.New()

	withdrawal, err := RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        payout,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	require.NoError(t, err)

	require.NoError(t, ProcessWithdrawal(db, withdrawal.ID, admin))

	var got models.Withdrawal
	require.NoError(t, db.First(&got, "id = ?", withdrawal.ID).Error)
	assert.Equal(t, models.WithdrawalCompleted, got.Status)
	require.NotNil(t, got.ProcessedBy)
	assert.Equal(t, admin, *got.ProcessedBy)
	assert.NotNil(t, got.ProcessedAt)

	err = ProcessWithdrawal(db, withdrawal.ID, admin)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRejectWithdrawalRestoresBalance(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	payout := releasedEarnings(t, db, student, tutorUser, tutor)
	admin := uuid.New()

	withdrawal, err := RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        payout,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	require.NoError(t, err)

	require.NoError(t, RejectWithdrawal(db, withdrawal.ID, admin, "account number does not match"))

	var got models.Withdrawal
	require.NoError(t, db.First(&got, "id = ?", withdrawal.ID).Error)
	assert.Equal(t, models.WithdrawalRejected, got.Status)
	assert.Equal(t, "account number does not match", got.RejectionReason)

	balance, err := AvailableBalance(db, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, payout, balance, "a rejected withdrawal frees its amount again")
}

func TestRequestWithdrawalCannotOverdraw(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	payout := releasedEarnings(t, db, student, tutorUser, tutor)

	_, err := RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        payout,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	require.NoError(t, err)

	_, err = RequestWithdrawal(db, tutorUser.ID, WithdrawalParams{
		Amount:        payout,
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountName:   "Siti Rahma",
	})
	assert.ErrorIs(t, err, ErrValidation)

	var reserved int64
	require.NoError(t, db.Model(&models.Withdrawal{}).
		Where("tutor_id = ? AND status IN ?", tutor.ID, []string{models.WithdrawalPending, models.WithdrawalCompleted}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&reserved).Error)
	assert.Equal(t, payout, reserved, "requests must never reserve more than was released")
}

func TestProcessWithdrawalUnknownID(t *testing.T) {
	db := newTestDB(t)

	err := ProcessWithdrawal(db, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
