// Package bot binds the inbound message stream to the client registry and
// the command table: register the sender, gate on authorization, reply.
package bot

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/feliperocha/barberbot/bus"
	"github.com/feliperocha/barberbot/commands"
)

const DeniedReply = "🚫 Você não tem permissão para usar este bot. Contate o administrador."

// DefaultName is used when the transport supplies no display name.
const DefaultName = "Cliente"

// Registry is the slice of the client store the message path needs.
type Registry interface {
	Upsert(phone, name string) error
	IsAuthorized(phone string) bool
}

type Session struct {
	bus      *bus.Bus
	registry Registry
	log      zerolog.Logger
}

func New(b *bus.Bus, reg Registry, log zerolog.Logger) *Session {
	return &Session{bus: b, registry: reg, log: log}
}

// Run consumes inbound messages until ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	for {
		msg, err := s.bus.ConsumeInbound(ctx)
		if err != nil {
			return err
		}
		s.Handle(ctx, msg)
	}
}

// Handle processes one inbound message to completion. Every message
// upserts the sender, even ones that end in the denial reply.
func (s *Session) Handle(ctx context.Context, msg bus.InboundMessage) {
	phone := PhoneFromSender(msg.SenderID)
	if phone == "" {
		return
	}
	name := strings.TrimSpace(msg.SenderName)
	if name == "" {
		name = DefaultName
	}

	if err := s.registry.Upsert(phone, name); err != nil {
		// Persistence is fire-and-forget on the message path: log and
		// keep replying.
		s.log.Error().Err(err).Str("phone", phone).Msg("persist client")
	}

	reply := DeniedReply
	if s.registry.IsAuthorized(phone) {
		reply = commands.Dispatch(msg.Content)
	}

	err := s.bus.PublishOutbound(ctx, bus.OutboundMessage{
		Channel: msg.Channel,
		ChatID:  msg.ChatID,
		Content: reply,
	})
	if err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("publish reply")
	}
}

// PhoneFromSender extracts the phone from a transport sender address by
// stripping the server suffix ("5511999990000@s.whatsapp.net" -> "5511999990000").
func PhoneFromSender(sender string) string {
	phone, _, _ := strings.Cut(sender, "@")
	return strings.TrimSpace(phone)
}
