package domain

import "time"

// Participant is a registered end user, keyed by the id of the channel
// the messaging transport reaches them on.
type Participant struct {
	ID          int64     `json:"id"`
	ChannelID   int64     `json:"channel_id"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
}
