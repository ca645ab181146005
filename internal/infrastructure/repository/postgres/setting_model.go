package postgres

import "time"

const (
	settingKeyBiddingEnabled     = "bidding_enabled"
	settingKeyBidDurationMinutes = "bid_duration_minutes"
)

type settingTableModel struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
