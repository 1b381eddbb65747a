package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

// BookingRepository is the query facade over the bookings table. Every listing
// variant funnels through one joined query shape: a role predicate (booker vs
// item owner), a domain.SearchFilter, paging, and a fixed start-descending
// order.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	StartDate time.Time `gorm:"column:start_date;index"`
	EndDate   time.Time `gorm:"column:end_date"`
	ItemID    int64     `gorm:"column:item_id;index"`
	BookerID  int64     `gorm:"column:booker_id;index"`
	Status    string    `gorm:"column:status"`
}

func (bookingModel) TableName() string { return "bookings" }

// bookingDetails is the joined row behind every read: the booking itself plus
// the item and booker fields the API returns.
type bookingDetails struct {
	ID         int64
	StartDate  time.Time
	EndDate    time.Time
	Status     string
	ItemID     int64
	ItemName   string
	OwnerID    int64
	BookerID   int64
	BookerName string
}

func toDomainBooking(d bookingDetails) *domain.Booking {
	return &domain.Booking{
		ID:       d.ID,
		Start:    d.StartDate,
		End:      d.EndDate,
		Status:   domain.BookingStatus(d.Status),
		ItemID:   d.ItemID,
		BookerID: d.BookerID,
		Item:     domain.Item{ID: d.ItemID, Name: d.ItemName, OwnerID: d.OwnerID},
		Booker:   domain.User{ID: d.BookerID, Name: d.BookerName},
	}
}

func (r *BookingRepository) details(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.start_date, bookings.end_date, bookings.status,
			bookings.item_id, items.name AS item_name, items.owner_id,
			bookings.booker_id, users.name AS booker_name`).
		Joins("JOIN items ON items.id = bookings.item_id").
		Joins("JOIN users ON users.id = bookings.booker_id")
}

func applyFilter(q *gorm.DB, f domain.SearchFilter) *gorm.DB {
	if f.Status != nil {
		q = q.Where("bookings.status = ?", string(*f.Status))
	}
	if f.StartBefore != nil {
		q = q.Where("bookings.start_date < ?", *f.StartBefore)
	}
	if f.StartAfter != nil {
		q = q.Where("bookings.start_date > ?", *f.StartAfter)
	}
	if f.EndBefore != nil {
		q = q.Where("bookings.end_date < ?", *f.EndBefore)
	}
	if f.EndAfter != nil {
		q = q.Where("bookings.end_date > ?", *f.EndAfter)
	}
	return q
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := bookingModel{
		StartDate: b.Start,
		EndDate:   b.End,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    string(b.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	b.ID = m.ID
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var d bookingDetails
	err := r.details(ctx).Where("bookings.id = ?", id).Take(&d).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainBooking(d), nil
}

// FindByIDForOwner resolves a booking only for the owner of its item. A miss
// covers both a nonexistent booking and one the user may not act on; the two
// are indistinguishable to the caller.
func (r *BookingRepository) FindByIDForOwner(ctx context.Context, id, ownerID int64) (*domain.Booking, error) {
	var d bookingDetails
	err := r.details(ctx).
		Where("bookings.id = ? AND items.owner_id = ?", id, ownerID).
		Take(&d).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainBooking(d), nil
}

// FindByIDForUser resolves a booking for its booker or the item's owner, in a
// single query so that unauthorized and nonexistent look identical.
func (r *BookingRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	var d bookingDetails
	err := r.details(ctx).
		Where("bookings.id = ? AND (items.owner_id = ? OR bookings.booker_id = ?)", id, userID, userID).
		Take(&d).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainBooking(d), nil
}

// UpdateStatusIfWaiting flips the status with a conditional update so that
// only one of two racing approvals can win; the loser sees updated=false.
func (r *BookingRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.BookingWaiting)).
		Update("status", string(status))
	if tx.Error != nil {
		return false, fmt.Errorf("update booking status: %w", tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

func (r *BookingRepository) FindByBooker(ctx context.Context, bookerID int64, f domain.SearchFilter, page Page) ([]domain.Booking, error) {
	q := applyFilter(r.details(ctx).Where("bookings.booker_id = ?", bookerID), f).
		Order("bookings.start_date DESC")
	return r.scanBookings(page.apply(q))
}

func (r *BookingRepository) FindByOwner(ctx context.Context, ownerID int64, f domain.SearchFilter, page Page) ([]domain.Booking, error) {
	q := applyFilter(r.details(ctx).Where("items.owner_id = ?", ownerID), f).
		Order("bookings.start_date DESC")
	return r.scanBookings(page.apply(q))
}

func (r *BookingRepository) scanBookings(q *gorm.DB) ([]domain.Booking, error) {
	var rows []bookingDetails
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	bookings := make([]domain.Booking, 0, len(rows))
	for _, d := range rows {
		bookings = append(bookings, *toDomainBooking(d))
	}
	return bookings, nil
}

// FindLastForItems returns, per item, the latest approved booking already
// started at the given instant.
func (r *BookingRepository) FindLastForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]domain.Booking, error) {
	return r.firstPerItem(ctx, itemIDs, "start_date <= ?", "start_date DESC", now)
}

// FindNextForItems returns, per item, the earliest approved booking starting
// after the given instant.
func (r *BookingRepository) FindNextForItems(ctx context.Context, itemIDs []int64, now time.Time) (map[int64]domain.Booking, error) {
	return r.firstPerItem(ctx, itemIDs, "start_date > ?", "start_date ASC", now)
}

func (r *BookingRepository) firstPerItem(ctx context.Context, itemIDs []int64, cond, order string, now time.Time) (map[int64]domain.Booking, error) {
	if len(itemIDs) == 0 {
		return map[int64]domain.Booking{}, nil
	}
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Where("status = ?", string(domain.BookingApproved)).
		Where(cond, now).
		Order(order).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("find bookings per item: %w", err)
	}
	result := make(map[int64]domain.Booking, len(itemIDs))
	for _, m := range models {
		if _, ok := result[m.ItemID]; ok {
			continue
		}
		result[m.ItemID] = domain.Booking{
			ID:       m.ID,
			Start:    m.StartDate,
			End:      m.EndDate,
			Status:   domain.BookingStatus(m.Status),
			ItemID:   m.ItemID,
			BookerID: m.BookerID,
		}
	}
	return result, nil
}

// HasFinishedBooking reports whether the user has an approved booking of the
// item that already ended. Gate for posting comments.
func (r *BookingRepository) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, string(domain.BookingApproved), now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count finished bookings: %w", err)
	}
	return count > 0, nil
}

// HasOverlapping reports whether any non-rejected booking of the item
// intersects the [start, end) interval.
func (r *BookingRepository) HasOverlapping(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("item_id = ? AND status <> ?", itemID, string(domain.BookingRejected)).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count overlapping bookings: %w", err)
	}
	return count > 0, nil
}
