package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// refreshTokenCleaner is the repository surface this command needs.
type refreshTokenCleaner interface {
	DeleteRefreshTokensOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RunCleanRefreshTokens deletes stored refresh tokens older than the given
// lifetime. Tokens that old can never pass signature verification again, so
// removing them only reclaims space; active sessions are unaffected.
//
// Requirements: Database must be migrated and accessible.
func RunCleanRefreshTokens(
	ctx context.Context,
	repo refreshTokenCleaner,
	logger *slog.Logger,
	olderThan time.Duration,
	format string,
	io IOTuple,
) error {
	if olderThan <= 0 {
		return fmt.Errorf("older-than must be a positive duration, got: %s", olderThan)
	}

	cutoff := time.Now().Add(-olderThan)

	logger.Info("cleaning stale refresh tokens",
		slog.Duration("older_than", olderThan),
		slog.Time("cutoff", cutoff),
	)

	count, err := repo.DeleteRefreshTokensOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean refresh tokens: %w", err)
	}

	if format == "json" {
		outputCleanRefreshTokensJSON(count, olderThan, io)
	} else {
		outputCleanRefreshTokensText(count, olderThan, io)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))

	return nil
}

// outputCleanRefreshTokensText outputs the result in human-readable text format.
func outputCleanRefreshTokensText(count int64, olderThan time.Duration, io IOTuple) {
	_, _ = fmt.Fprintf(io.Writer, "Successfully deleted %d refresh token(s) older than %s\n", count, olderThan)
}

// outputCleanRefreshTokensJSON outputs the result in JSON format for machine consumption.
func outputCleanRefreshTokensJSON(count int64, olderThan time.Duration, io IOTuple) {
	result := map[string]interface{}{
		"count":      count,
		"older_than": olderThan.String(),
	}

	encoder := json.NewEncoder(io.Writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(result)
}
