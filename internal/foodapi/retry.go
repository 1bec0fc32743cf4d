package foodapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = time.Second
)

// getWithRetries performs a GET with up to maxRetries attempts and
// exponential backoff (1s, 2s, 4s) on transport errors. Non-2xx responses
// are returned to the caller; only connection and timeout failures retry.
// Context cancellation aborts both the request and the backoff sleep.
func getWithRetries(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	var lastErr error
	backoff := defaultInitialBackoff
	for attempt := 0; attempt < defaultMaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		logger.Get().Warn("external api retry",
			zap.Int("attempt", attempt+1),
			zap.Int("max", defaultMaxRetries),
			zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < defaultMaxRetries-1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}
	}
	return nil, lastErr
}
