package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// amountTolerance absorbs currency rounding when comparing the
	// submitted amount against the computed share.
	amountTolerance = 0.01

	// reversalWindowDays is how long after creation a payment may be
	// reversed, at day granularity.
	reversalWindowDays = 7
)

type PaymentService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db, now: time.Now}
}

// PaymentHistoryEntry is a payment joined with the family it was made
// for, as returned by History.
type PaymentHistoryEntry struct {
	ID         uuid.UUID `json:"id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	FamilyID   uuid.UUID `json:"family_id"`
	FamilyName string    `json:"family_name"`
}

// Create records the caller's contribution for the current calendar
// month. The amount must match the live share, monthly cost divided by
// the member count at this moment, within the rounding tolerance. One
// non-reversed payment per member per month; the partial unique index
// on payments backs this under concurrency.
func (s *PaymentService) Create(userID, familyID uuid.UUID, amount float64) (uuid.UUID, error) {
	var membership models.FamilyMember
	err := s.db.Where("family_id = ? AND user_id = ?", familyID, userID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrNotFamilyMember
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		return uuid.Nil, ErrFamilyNotFound
	}

	var memberCount int64
	if err := s.db.Model(&models.FamilyMember{}).
		Where("family_id = ?", familyID).Count(&memberCount).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to count members: %w", err)
	}

	expected := family.MonthlyCost / float64(memberCount)
	if math.Abs(amount-expected) > amountTolerance {
		return uuid.Nil, badRequestf("invalid amount, expected %.2f", expected)
	}

	monthStart, monthEnd := monthBounds(s.now())
	var existing models.Payment
	err = s.db.Where(
		"member_id = ? AND created_at >= ? AND created_at < ? AND status <> ?",
		membership.ID, monthStart, monthEnd, models.PaymentStatusReversed,
	).First(&existing).Error
	if err == nil {
		return uuid.Nil, ErrPaymentThisMonth
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("failed to check current month: %w", err)
	}

	payment := models.Payment{
		ID:       uuid.New(),
		MemberID: membership.ID,
		Amount:   amount,
		Status:   models.PaymentStatusPaid,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment.ID, nil
}

// Reverse flips a payment to reversed. Only the paying member may
// reverse, only within the window, and only once. The row itself is
// never deleted.
func (s *PaymentService) Reverse(userID, paymentID uuid.UUID) error {
	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", paymentID).Error; err != nil {
		return ErrPaymentNotFound
	}

	var member models.FamilyMember
	if err := s.db.First(&member, "id = ?", payment.MemberID).Error; err != nil {
		return ErrNotPaymentOwner
	}
	if member.UserID != userID {
		return ErrNotPaymentOwner
	}

	elapsedDays := int(s.now().Sub(payment.CreatedAt).Hours() / 24)
	if elapsedDays > reversalWindowDays {
		return ErrReversalExpired
	}

	if payment.Status == models.PaymentStatusReversed {
		return ErrAlreadyReversed
	}

	if err := s.db.Model(&payment).Update("status", models.PaymentStatusReversed).Error; err != nil {
		return fmt.Errorf("failed to reverse payment: %w", err)
	}
	return nil
}

// History returns a page of the caller's payments, newest first, with
// the total count for client-side pagination. familyID narrows the
// result to one family when set.
func (s *PaymentService) History(userID uuid.UUID, familyID *uuid.UUID, limit, offset int) ([]PaymentHistoryEntry, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	base := s.db.Table("payments").
		Joins("JOIN family_members ON family_members.id = payments.member_id").
		Joins("JOIN families ON families.id = family_members.family_id").
		Where("family_members.user_id = ?", userID)
	if familyID != nil {
		base = base.Where("family_members.family_id = ?", *familyID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var entries []PaymentHistoryEntry
	err := base.Session(&gorm.Session{}).
		Select("payments.id, payments.amount, payments.status, payments.created_at, families.id AS family_id, families.name AS family_name").
		Order("payments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return entries, total, nil
}

// monthBounds returns the [start, end) of the calendar month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
