package item

import "shareit/internal/domain"

type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type PatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// BookingShort is the trimmed booking view embedded in an owner's item.
type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// Extended is the item detail view: comments for everyone, booking
// neighborhood only for the owner.
type Extended struct {
	domain.Item
	LastBooking *BookingShort    `json:"lastBooking"`
	NextBooking *BookingShort    `json:"nextBooking"`
	Comments    []domain.Comment `json:"comments"`
}
