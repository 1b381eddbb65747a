package request

import "shareit/internal/domain"

type CreateRequest struct {
	Description string `json:"description" binding:"required"`
}

// Extended is a request together with the items listed in answer to it.
type Extended struct {
	domain.ItemRequest
	Items []domain.Item `json:"items"`
}
