package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/domain/player"
	qb "github.com/leagueops/league-office/internal/platform/querybuilder"
)

// activeBidConstraint is the partial unique index guarding one unfinalized
// bid per team per player.
const activeBidConstraint = "uq_bids_active_per_team_player"

const bidReturningColumns = "RETURNING id, public_id, player_public_id, team_public_id, amount, placed_at, bid_expires_at, finalized, outcome, winner_team_public_id, created_at, updated_at"

type BidRepository struct {
	db *sqlx.DB
}

func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Insert(ctx context.Context, b bid.Bid) error {
	insertModel := bidInsertModel{
		PublicID:  b.ID,
		PlayerID:  b.PlayerID,
		TeamID:    b.TeamID,
		Amount:    b.Amount,
		PlacedAt:  b.PlacedAt,
		ExpiresAt: b.ExpiresAt,
	}
	query, args, err := qb.InsertModel("bids", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert bid query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, activeBidConstraint) {
			return bid.ErrActiveBidExists
		}
		return fmt.Errorf("insert bid: %w", err)
	}

	return nil
}

func (r *BidRepository) GetByID(ctx context.Context, bidID string) (bid.Bid, bool, error) {
	query, args, err := qb.Select("*").From("bids").
		Where(qb.Eq("public_id", bidID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return bid.Bid{}, false, fmt.Errorf("build select bid query: %w", err)
	}

	var row bidTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bid.Bid{}, false, nil
		}
		return bid.Bid{}, false, fmt.Errorf("select bid: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *BidRepository) ListActiveByPlayer(ctx context.Context, playerID string, now time.Time) ([]bid.Bid, error) {
	query, args, err := qb.Select("*").From("bids").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("finalized", false),
			qb.Gt("bid_expires_at", now),
		).
		OrderBy("amount DESC", "placed_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active bids query: %w", err)
	}

	var rows []bidTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active bids: %w", err)
	}

	out := make([]bid.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *BidRepository) ListUnfinalizedByPlayer(ctx context.Context, playerID string) ([]bid.Bid, error) {
	query, args, err := qb.Select("*").From("bids").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("finalized", false),
		).
		OrderBy("placed_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select unfinalized bids query: %w", err)
	}

	var rows []bidTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select unfinalized bids: %w", err)
	}

	out := make([]bid.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *BidRepository) ListExpiredPlayerIDs(ctx context.Context, cutoff time.Time) ([]string, error) {
	query, args, err := qb.Select("DISTINCT player_public_id").From("bids").
		Where(
			qb.Eq("finalized", false),
			qb.Lte("bid_expires_at", cutoff),
		).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select expired players query: %w", err)
	}

	var playerIDs []string
	if err := r.db.SelectContext(ctx, &playerIDs, query, args...); err != nil {
		return nil, fmt.Errorf("select expired players: %w", err)
	}

	return playerIDs, nil
}

func (r *BidRepository) ExtendExpiry(ctx context.Context, bidID string, hours int) (bid.Bid, bool, error) {
	query, args, err := qb.Update("bids").
		SetExpr("bid_expires_at", "bid_expires_at + make_interval(hours => ?)", hours).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", bidID),
			qb.Eq("finalized", false),
		).
		Suffix(bidReturningColumns).
		ToSQL()
	if err != nil {
		return bid.Bid{}, false, fmt.Errorf("build extend bid expiry query: %w", err)
	}

	var row bidTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bid.Bid{}, false, nil
		}
		return bid.Bid{}, false, fmt.Errorf("extend bid expiry: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *BidRepository) Cancel(ctx context.Context, bidID string) (bid.Bid, bool, error) {
	query, args, err := qb.Update("bids").
		Set("finalized", true).
		Set("outcome", string(bid.OutcomeCancelled)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", bidID),
			qb.Eq("finalized", false),
		).
		Suffix(bidReturningColumns).
		ToSQL()
	if err != nil {
		return bid.Bid{}, false, fmt.Errorf("build cancel bid query: %w", err)
	}

	var row bidTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return bid.Bid{}, false, nil
		}
		return bid.Bid{}, false, fmt.Errorf("cancel bid: %w", err)
	}

	return row.toDomain(), true, nil
}

// Finalize applies one player's resolution atomically. Every UPDATE keeps a
// finalized = FALSE guard, so a resolution already applied by a concurrent
// sweep commits as a no-op instead of double-awarding the player.
func (r *BidRepository) Finalize(ctx context.Context, resolution bid.Resolution) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin finalize bids tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if resolution.WinnerID != "" {
		if err := finalizeBidGroup(ctx, tx, []string{resolution.WinnerID}, bid.OutcomeWon, resolution.WinnerTeamID); err != nil {
			return err
		}
		if err := finalizeBidGroup(ctx, tx, resolution.LoserIDs, bid.OutcomeLost, resolution.WinnerTeamID); err != nil {
			return err
		}
		if err := assignPlayerToTeam(ctx, tx, resolution.PlayerID, resolution.WinnerTeamID); err != nil {
			return err
		}
	}
	if err := finalizeBidGroup(ctx, tx, resolution.ExpiredIDs, bid.OutcomeExpired, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finalize bids tx: %w", err)
	}

	return nil
}

func finalizeBidGroup(ctx context.Context, tx *sqlx.Tx, bidIDs []string, outcome bid.Outcome, winnerTeamID string) error {
	if len(bidIDs) == 0 {
		return nil
	}

	ids := make([]any, 0, len(bidIDs))
	for _, id := range bidIDs {
		ids = append(ids, id)
	}

	builder := qb.Update("bids").
		Set("finalized", true).
		Set("outcome", string(outcome)).
		SetExpr("updated_at", "NOW()")
	if winnerTeamID != "" {
		builder = builder.Set("winner_team_public_id", winnerTeamID)
	}
	query, args, err := builder.
		Where(
			qb.In("public_id", ids),
			qb.Eq("finalized", false),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finalize %s bids query: %w", outcome, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("finalize %s bids: %w", outcome, err)
	}

	return nil
}

func assignPlayerToTeam(ctx context.Context, tx *sqlx.Tx, playerID, teamID string) error {
	query, args, err := qb.Update("players").
		Set("status", string(player.StatusActive)).
		Set("team_public_id", teamID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign player query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assign player to winning team: %w", err)
	}

	return nil
}
