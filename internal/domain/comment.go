package domain

import "time"

type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"-"`
	AuthorID   int64     `json:"-"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}
