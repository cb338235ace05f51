package economy

import (
	"github.com/hanabira/hanachat/internal/scheduler"
)

// StartBoosterCountdown runs the wall-clock countdown for the active
// booster on a one-second tick bound to the session token. The ticker
// stops itself once the booster clears; the returned stop function
// cancels it early (e.g. when a replacement booster restarts the
// countdown).
func (e *Engine) StartBoosterCountdown(sched *scheduler.Scheduler, sessionToken string) (stop func()) {
	stop = sched.Every(sessionToken, BoosterTickInterval, func() {
		e.TickBooster(BoosterTickInterval.Milliseconds())
		if _, active := e.ActiveBooster(); !active {
			stop()
		}
	})
	return stop
}
