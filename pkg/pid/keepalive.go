package pid

import (
	"context"
	"sync"
	"time"
)

// DefaultPingInterval is the cadence deployed displays are pinged at.
const DefaultPingInterval = 10 * time.Second

// Pinger pings a Conn on a fixed interval so the display never reaches
// its idle auto-clear. It satisfies the Runnable shape used by
// framework.Runner.
type Pinger struct {
	Conn     *Conn
	Interval time.Duration // 0 means DefaultPingInterval
	// Lock, when set, serializes pings with other users of the Conn.
	Lock sync.Locker
}

// Run pings until ctx is cancelled or a ping fails.
func (p *Pinger) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.ping(); err != nil {
				return err
			}
		}
	}
}

func (p *Pinger) ping() error {
	if p.Lock != nil {
		p.Lock.Lock()
		defer p.Lock.Unlock()
	}
	return p.Conn.Ping()
}
