package services

import (
	"testing"
	"time"

	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fourMemberFamily builds a family with monthlyCost=100 and four
// members, so the live share is exactly 25.00.
func fourMemberFamily(t *testing.T, db *gorm.DB) (models.Family, []models.User) {
	t.Helper()

	owner := createUser(t, db, "Alice", "alice@example.com")
	family := createFamily(t, db, owner, pixFamilyRequest(100, 10))

	users := []models.User{owner}
	for _, m := range []struct{ name, email string }{
		{"Bob", "bob@example.com"},
		{"Carol", "carol@example.com"},
		{"Dave", "dave@example.com"},
	} {
		u := createUser(t, db, m.name, m.email)
		addMember(t, db, family, u, models.RoleMember)
		users = append(users, u)
	}
	return family, users
}

func TestCreatePaymentShareScenario(t *testing.T) {
	db := newTestDB(t)
	family, users := fourMemberFamily(t, db)
	payer := users[1]

	svc := NewPaymentService(db)

	t.Run("non-member rejected", func(t *testing.T) {
		outsider := createUser(t, db, "Eve", "eve@example.com")
		_, err := svc.Create(outsider.ID, family.ID, 25)
		assert.ErrorIs(t, err, ErrNotFamilyMember)
	})

	t.Run("amount off by more than tolerance rejected", func(t *testing.T) {
		_, err := svc.Create(payer.ID, family.ID, 24.98)
		require.Error(t, err)
		assert.IsType(t, &BadRequestError{}, err)
		assert.Contains(t, err.Error(), "25.00")
	})

	t.Run("exact share accepted", func(t *testing.T) {
		paymentID, err := svc.Create(payer.ID, family.ID, 25.00)
		require.NoError(t, err)

		var payment models.Payment
		require.NoError(t, db.First(&payment, "id = ?", paymentID).Error)
		assert.Equal(t, models.PaymentStatusPaid, payment.Status)
		assert.Equal(t, 25.00, payment.Amount)
	})

	t.Run("second payment same month rejected", func(t *testing.T) {
		_, err := svc.Create(payer.ID, family.ID, 25.00)
		assert.ErrorIs(t, err, ErrPaymentThisMonth)
	})

	t.Run("reversed payment frees the month", func(t *testing.T) {
		other := users[2]
		paymentID, err := svc.Create(other.ID, family.ID, 25.00)
		require.NoError(t, err)
		require.NoError(t, svc.Reverse(other.ID, paymentID))

		_, err = svc.Create(other.ID, family.ID, 25.00)
		require.NoError(t, err)
	})
}

func TestCreatePaymentShareTracksMemberCount(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice", "alice@example.com")
	family := createFamily(t, db, owner, pixFamilyRequest(90, 10))

	svc := NewPaymentService(db)

	// Sole member pays the full cost.
	_, err := svc.Create(owner.ID, family.ID, 90)
	require.NoError(t, err)

	// After two more join, the share drops to 30.
	bob := createUser(t, db, "Bob", "bob@example.com")
	carol := createUser(t, db, "Carol", "carol@example.com")
	addMember(t, db, family, bob, models.RoleMember)
	addMember(t, db, family, carol, models.RoleMember)

	_, err = svc.Create(bob.ID, family.ID, 90)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "30.00")

	_, err = svc.Create(bob.ID, family.ID, 30)
	require.NoError(t, err)
}

func TestReversePayment(t *testing.T) {
	db := newTestDB(t)
	family, users := fourMemberFamily(t, db)
	payer := users[1]
	other := users[2]

	svc := NewPaymentService(db)
	paymentID, err := svc.Create(payer.ID, family.ID, 25.00)
	require.NoError(t, err)

	t.Run("only the payer may reverse", func(t *testing.T) {
		assert.ErrorIs(t, svc.Reverse(other.ID, paymentID), ErrNotPaymentOwner)
	})

	t.Run("unknown payment rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Reverse(payer.ID, uuid.New()), ErrPaymentNotFound)
	})

	t.Run("day 7 still inside the window", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().Add(7 * 24 * time.Hour) }
		defer func() { svc.now = time.Now }()

		require.NoError(t, svc.Reverse(payer.ID, paymentID))

		var payment models.Payment
		require.NoError(t, db.First(&payment, "id = ?", paymentID).Error)
		assert.Equal(t, models.PaymentStatusReversed, payment.Status)
	})

	t.Run("already reversed rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Reverse(payer.ID, paymentID), ErrAlreadyReversed)
	})

	t.Run("day 8 outside the window", func(t *testing.T) {
		lateID, err := svc.Create(payer.ID, family.ID, 25.00)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
		defer func() { svc.now = time.Now }()

		err = svc.Reverse(payer.ID, lateID)
		assert.ErrorIs(t, err, ErrReversalExpired)

		var payment models.Payment
		require.NoError(t, db.First(&payment, "id = ?", lateID).Error)
		assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	})
}

func TestPaymentHistory(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice", "alice@example.com")

	first := createFamily(t, db, owner, pixFamilyRequest(30, 5))
	secondReq := pixFamilyRequest(50, 5)
	secondReq.Name = "Second Crew"
	second := createFamily(t, db, owner, secondReq)

	var firstMembership, secondMembership models.FamilyMember
	require.NoError(t, db.Where("family_id = ?", first.ID).First(&firstMembership).Error)
	require.NoError(t, db.Where("family_id = ?", second.ID).First(&secondMembership).Error)

	// Three months of history in the first family, one in the second.
	base := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		payment := models.Payment{
			ID:       uuid.New(),
			MemberID: firstMembership.ID,
			Amount:   30,
			Status:   models.PaymentStatusPaid,
		}
		require.NoError(t, db.Create(&payment).Error)
		require.NoError(t, db.Model(&payment).Update("created_at", base.AddDate(0, i, 0)).Error)
	}
	last := models.Payment{
		ID:       uuid.New(),
		MemberID: secondMembership.ID,
		Amount:   50,
		Status:   models.PaymentStatusPaid,
	}
	require.NoError(t, db.Create(&last).Error)
	require.NoError(t, db.Model(&last).Update("created_at", base.AddDate(0, 3, 0)).Error)

	svc := NewPaymentService(db)

	t.Run("newest first with total", func(t *testing.T) {
		entries, total, err := svc.History(owner.ID, nil, 50, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		require.Len(t, entries, 4)
		assert.Equal(t, last.ID, entries[0].ID)
		assert.Equal(t, "Second Crew", entries[0].FamilyName)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		entries, total, err := svc.History(owner.ID, nil, 2, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, entries, 2)
	})

	t.Run("family filter", func(t *testing.T) {
		entries, total, err := svc.History(owner.ID, &first.ID, 50, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		for _, e := range entries {
			assert.Equal(t, first.ID, e.FamilyID)
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		stranger := createUser(t, db, "Eve", "eve@example.com")
		entries, total, err := svc.History(stranger.ID, nil, 50, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, entries)
	})
}
