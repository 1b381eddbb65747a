package domain

// Item is a shareable resource. Available is a pointer because "not set" and
// "false" must be distinguishable in patch requests.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}
