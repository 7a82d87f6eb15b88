package handlers

import (
	"context"
	"log/slog"
	"time"
)

// typingInterval refreshes the indicator before Discord's ~10s expiry.
const typingInterval = 8 * time.Second

// startTyping shows the typing indicator in channelID until the returned
// stop function is called or ctx ends.
func startTyping(ctx context.Context, s Session, channelID string, log *slog.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			if err := s.ChannelTyping(channelID); err != nil {
				if ctx.Err() != nil {
					return
				}
				log.DebugContext(ctx, "Typing indicator failed", "error", err, "channel_id", channelID)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
