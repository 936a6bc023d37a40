package client

import (
	"context"
	"log/slog"
	"time"
)

const SettleDelay = 100 * time.Millisecond

// MediaDevices grants access to local capture devices.
type MediaDevices interface {
	// RequestMicrophone asks for microphone access. The returned release
	// stops the temporary capture.
	RequestMicrophone(ctx context.Context) (release func(), err error)
}

// EnterSalon primes microphone permission before joining a call. A denied
// permission is logged and does not stop the user from entering.
func EnterSalon(ctx context.Context, devices MediaDevices, logger *slog.Logger) error {
	if devices != nil {
		release, err := devices.RequestMicrophone(ctx)
		if err != nil {
			logger.Warn("microphone permission not granted", slog.String("err", err.Error()))
		} else if release != nil {
			release()
		}
	}

	timer := time.NewTimer(SettleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
