package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kartyax/tutorhub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionPricesByDuration(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	_, tutor := seedTutor(t, db, 100000)

	session, err := CreateSession(db, CreateSessionParams{
		StudentID:     student.ID,
		TutorID:       tutor.ID,
		Date:          time.Now().Add(24 * time.Hour),
		Duration:      2,
		Method:        "online",
		PaymentMethod: "gopay",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(200000), session.Price)
	assert.Equal(t, models.SessionPending, session.Status)
	assert.Equal(t, models.PaymentPending, session.PaymentStatus)
}

func TestCreateSessionUnknownTutor(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)

	_, err := CreateSession(db, CreateSessionParams{
		StudentID: student.ID,
		TutorID:   uuid.New(),
		Date:      time.Now().Add(24 * time.Hour),
		Duration:  1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmSessionOpensEscrow(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionPending)
	require.NoError(t, db.Model(session).Update("price", int64(200000)).Error)

	txn, err := ConfirmSession(db, session.ID, tutorUser.ID, 0.1)
	require.NoError(t, err)

	assert.Equal(t, models.TransactionHeld, txn.Status)
	assert.Equal(t, int64(200000), txn.Amount)
	assert.Equal(t, int64(20000), txn.AdminFee)
	assert.Equal(t, int64(180000), txn.TutorAmount)
	assert.Equal(t, txn.Amount, txn.AdminFee+txn.TutorAmount)

	var got models.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionConfirmed, got.Status)
	assert.Equal(t, models.PaymentHeld, got.PaymentStatus)
}

func TestConfirmSessionTwiceFails(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionPending)

	_, err := ConfirmSession(db, session.ID, tutorUser.ID, 0.1)
	require.NoError(t, err)

	_, err = ConfirmSession(db, session.ID, tutorUser.ID, 0.1)
	assert.ErrorIs(t, err, ErrInvalidState)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Where("session_id = ?", session.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the losing confirm must not open a second transaction")
}

func TestConfirmSessionWrongTutor(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	_, tutor := seedTutor(t, db, 100000)
	otherTutorUser, _ := seedTutor(t, db, 50000)
	session := seedSession(t, db, student, tutor, models.SessionPending)

	_, err := ConfirmSession(db, session.ID, otherTutorUser.ID, 0.1)
	assert.ErrorIs(t, err, ErrForbidden)

	var got models.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionPending, got.Status)
}

func TestCompleteSessionBumpsCounterOnce(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionConfirmed)

	require.NoError(t, CompleteSession(db, session.ID, tutorUser.ID))

	var profile models.TutorProfile
	require.NoError(t, db.First(&profile, "id = ?", tutor.ID).Error)
	assert.Equal(t, 1, profile.SessionsCompleted)

	err := CompleteSession(db, session.ID, tutorUser.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, db.First(&profile, "id = ?", tutor.ID).Error)
	assert.Equal(t, 1, profile.SessionsCompleted, "a duplicate complete must not bump the counter again")
}

func TestCompleteSessionRequiresConfirmed(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionPending)

	err := CompleteSession(db, session.ID, tutorUser.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	var got models.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionPending, got.Status)
}

func TestRejectSessionLeavesEscrowHeld(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionPending)

	txn, err := ConfirmSession(db, session.ID, tutorUser.ID, 0.1)
	require.NoError(t, err)

	require.NoError(t, RejectSession(db, session.ID, tutorUser.ID))

	var gotSession models.Session
	require.NoError(t, db.First(&gotSession, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionCancelled, gotSession.Status)

	var gotTxn models.Transaction
	require.NoError(t, db.First(&gotTxn, "id = ?", txn.ID).Error)
	assert.Equal(t, models.TransactionHeld, gotTxn.Status, "held money waits for an admin refund")
}

func TestCancelSessionOwnership(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	other := seedStudent(t, db)
	_, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionPending)

	err := CancelSession(db, session.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, CancelSession(db, session.ID, student.ID))

	var got models.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionCancelled, got.Status)
}

func TestCancelSessionAfterCompletion(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	_, tutor := seedTutor(t, db, 100000)
	session := seedSession(t, db, student, tutor, models.SessionCompleted)

	err := CancelSession(db, session.ID, student.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	var got models.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionCompleted, got.Status)
}

func TestBookingLifecycleEndToEnd(t *testing.T) {
	db := newTestDB(t)
	student := seedStudent(t, db)
	tutorUser, tutor := seedTutor(t, db, 100000)

	session, err := CreateSession(db, CreateSessionParams{
		StudentID:     student.ID,
		TutorID:       tutor.ID,
		Date:          time.Now().Add(24 * time.Hour),
		Duration:      2,
		Method:        "online",
		PaymentMethod: "gopay",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200000), session.Price)

	txn, err := ConfirmSession(db, session.ID, tutorUser.ID, 0.1)
	require.NoError(t, err)

	require.NoError(t, CompleteSession(db, session.ID, tutorUser.ID))
	require.NoError(t, ReleaseEscrow(db, txn.ID))

	var gotSession models.Session
	require.NoError(t, db.First(&gotSession, "id = ?", session.ID).Error)
	assert.Equal(t, models.SessionCompleted, gotSession.Status)
	assert.Equal(t, models.PaymentReleased, gotSession.PaymentStatus)

	var profile models.TutorProfile
	require.NoError(t, db.First(&profile, "id = ?", tutor.ID).Error)
	assert.Equal(t, 1, profile.SessionsCompleted)

	balance, err := AvailableBalance(db, tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(180000), balance)
}
