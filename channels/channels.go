package channels

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/feliperocha/barberbot/bus"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
	Send(ctx context.Context, msg bus.OutboundMessage) error
	IsRunning() bool
}

// Manager starts the configured channels and delivers outbound messages
// from the bus to the channel they belong to.
type Manager struct {
	bus *bus.Bus
	log zerolog.Logger

	mu       sync.Mutex
	channels []Channel
}

func NewManager(b *bus.Bus, log zerolog.Logger) *Manager {
	return &Manager{bus: b, log: log}
}

func (m *Manager) Add(ch Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = append(m.channels, ch)
}

func (m *Manager) Get(name string) Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.channels {
		if ch.Name() == name {
			return ch
		}
	}
	return nil
}

func (m *Manager) StartAll(ctx context.Context) {
	m.mu.Lock()
	chs := make([]Channel, len(m.channels))
	copy(chs, m.channels)
	m.mu.Unlock()

	for _, ch := range chs {
		go func(c Channel) {
			err := c.Start(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				m.log.Error().Err(err).Str("channel", c.Name()).Msg("channel stopped")
			}
		}(ch)
	}
	go m.deliverOutbound(ctx)
}

func (m *Manager) StopAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs []error
	for _, ch := range m.channels {
		if err := ch.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) deliverOutbound(ctx context.Context) {
	for {
		msg, err := m.bus.ConsumeOutbound(ctx)
		if err != nil {
			return
		}
		ch := m.Get(msg.Channel)
		if ch == nil {
			m.log.Warn().Str("channel", msg.Channel).Msg("outbound for unknown channel")
			continue
		}
		if err := ch.Send(ctx, msg); err != nil {
			m.log.Error().Err(err).Str("channel", msg.Channel).Str("chat_id", msg.ChatID).Msg("send failed")
		}
	}
}
