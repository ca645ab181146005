package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leagueops/league-office/internal/domain/settings"
	qb "github.com/leagueops/league-office/internal/platform/querybuilder"
)

// SettingRepository maps the key-value system_settings rows onto the typed
// settings records the rest of the code works with. Missing rows fall back
// to defaults; a malformed value is an error, not a silent default, so a bad
// write shows up instead of quietly disabling bidding forever.
type SettingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) LoadBidding(ctx context.Context) (settings.Bidding, error) {
	query, args, err := qb.Select("key", "value", "updated_at").From("system_settings").
		Where(qb.In("key", []any{settingKeyBiddingEnabled, settingKeyBidDurationMinutes})).
		ToSQL()
	if err != nil {
		return settings.Bidding{}, fmt.Errorf("build select bidding settings query: %w", err)
	}

	var rows []settingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return settings.Bidding{}, fmt.Errorf("select bidding settings: %w", err)
	}

	out := settings.Defaults()
	for _, row := range rows {
		switch row.Key {
		case settingKeyBiddingEnabled:
			enabled, err := strconv.ParseBool(row.Value)
			if err != nil {
				return settings.Bidding{}, fmt.Errorf("parse %s value %q: %w", row.Key, row.Value, err)
			}
			out.Enabled = enabled
		case settingKeyBidDurationMinutes:
			minutes, err := strconv.Atoi(row.Value)
			if err != nil {
				return settings.Bidding{}, fmt.Errorf("parse %s value %q: %w", row.Key, row.Value, err)
			}
			out.BidDuration = time.Duration(minutes) * time.Minute
		}
	}

	return out, nil
}

func (r *SettingRepository) SaveBidding(ctx context.Context, b settings.Bidding) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save bidding settings tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	values := map[string]string{
		settingKeyBiddingEnabled:     strconv.FormatBool(b.Enabled),
		settingKeyBidDurationMinutes: strconv.Itoa(int(b.BidDuration / time.Minute)),
	}
	for _, key := range []string{settingKeyBiddingEnabled, settingKeyBidDurationMinutes} {
		query, args, err := qb.InsertInto("system_settings").
			Columns("key", "value").
			Values(key, values[key]).
			Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert setting %s query: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save bidding settings tx: %w", err)
	}

	return nil
}
