package pg

import (
	"context"
	"encoding/json"
	"time"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
)

// changeChannel is the NOTIFY channel fed by the asset_price trigger.
const changeChannel = "asset_price_changes"

// reconnectDelay paces reconnection attempts after a listener failure.
const reconnectDelay = 5 * time.Second

// LiveFeed implements interfaces.LiveFeed over Postgres LISTEN/NOTIFY.
// It holds one dedicated connection from the pool for the lifetime of a
// listen session and reconnects with a delay on failure.
type LiveFeed struct {
	db     *DB
	logger *common.Logger
}

// NewLiveFeed creates a new LiveFeed.
func NewLiveFeed(db *DB, logger *common.Logger) *LiveFeed {
	return &LiveFeed{db: db, logger: logger}
}

// Run listens for asset price change notifications until ctx is
// cancelled, invoking handler for each decoded event in arrival order.
func (f *LiveFeed) Run(ctx context.Context, handler func(models.PriceEvent)) {
	for {
		if err := f.listen(ctx, handler); err != nil && ctx.Err() == nil {
			f.logger.Warn().Err(err).Msg("Live feed listener failed, reconnecting")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *LiveFeed) listen(ctx context.Context, handler func(models.PriceEvent)) error {
	conn, err := f.db.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+changeChannel); err != nil {
		return err
	}

	f.logger.Info().Str("channel", changeChannel).Msg("Listening for asset price changes")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event models.PriceEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			f.logger.Warn().Err(err).Str("payload", notification.Payload).Msg("Dropping malformed price event")
			continue
		}

		handler(event)
	}
}

// Compile-time check
var _ interfaces.LiveFeed = (*LiveFeed)(nil)
