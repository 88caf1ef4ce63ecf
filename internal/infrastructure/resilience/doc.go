/*
Package resilience provides a circuit breaker used to pace reconnection to
the host.

# Overview

While the host is starting (or restarting) every dial fails. The breaker
counts consecutive failures and, once ReadyToTrip says so, opens for
Timeout; callers ask Cooldown how long to wait before the next trial
instead of spinning on a dead endpoint.

# Usage

	breaker := resilience.New("bridge-dial", resilience.Settings{
		Timeout: 2 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})

	err := breaker.Do(func() error {
		return dial(ctx)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		wait(breaker.Cooldown())
	}

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                      [failure]
	                                           v
	                                         Open
*/
package resilience
