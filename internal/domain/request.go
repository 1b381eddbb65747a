package domain

import "time"

// ItemRequest is a wishlist entry: a user describes an item they wish existed
// so that owners can list items answering it.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"-"`
	Created     time.Time `json:"created"`
}
