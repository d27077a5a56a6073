package whatsapp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mdp/qrterminal/v3"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
	_ "modernc.org/sqlite"

	"github.com/feliperocha/barberbot/bus"
	"github.com/feliperocha/barberbot/channels"
	"github.com/feliperocha/barberbot/config"
)

// Channel is the WhatsApp transport. Device credentials live in a sqlite
// store next to the rest of the state, so pairing survives restarts; the
// first Start renders a QR code for the operator to scan.
type Channel struct {
	cfg config.WhatsAppConfig
	bus *bus.Bus
	log zerolog.Logger

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	client *whatsmeow.Client
}

var _ channels.Channel = (*Channel)(nil)

func New(cfg config.WhatsAppConfig, b *bus.Bus, log zerolog.Logger) *Channel {
	return &Channel{cfg: cfg, bus: b, log: log}
}

func (c *Channel) Name() string    { return "whatsapp" }
func (c *Channel) IsRunning() bool { return c.running.Load() }

func (c *Channel) Start(ctx context.Context) error {
	if strings.TrimSpace(c.cfg.DBPath) == "" {
		return fmt.Errorf("whatsapp dbPath is empty")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	defer func() {
		cancel()
		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
	}()

	container, err := sqlstore.New(runCtx, "sqlite",
		fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", c.cfg.DBPath),
		waLog.Zerolog(c.log.With().Str("component", "sqlstore").Logger()))
	if err != nil {
		return fmt.Errorf("open device store: %w", err)
	}
	device, err := container.GetFirstDevice(runCtx)
	if err != nil {
		return fmt.Errorf("get device: %w", err)
	}

	client := whatsmeow.NewClient(device, waLog.Zerolog(c.log.With().Str("component", "client").Logger()))
	client.AddEventHandler(func(evt any) {
		c.handleEvent(runCtx, evt)
	})
	c.mu.Lock()
	c.client = client
	c.mu.Unlock()

	if client.Store.ID == nil {
		if err := c.pair(runCtx, client); err != nil {
			return err
		}
	} else if err := client.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	c.running.Store(true)
	defer c.running.Store(false)

	<-runCtx.Done()
	client.Disconnect()
	return runCtx.Err()
}

// pair runs the first-login QR flow. GetQRChannel must be called before
// Connect on an unpaired device.
func (c *Channel) pair(ctx context.Context, client *whatsmeow.Client) error {
	qrChan, err := client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("qr channel: %w", err)
	}
	if err := client.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			fmt.Println("Escaneie o QR code abaixo com o WhatsApp:")
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		case "success":
			c.log.Info().Msg("whatsapp paired")
			return nil
		default:
			return fmt.Errorf("pairing failed: %s", evt.Event)
		}
	}
	return ctx.Err()
}

func (c *Channel) Stop() error {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

func (c *Channel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return fmt.Errorf("whatsapp client not started")
	}
	jid, err := types.ParseJID(strings.TrimSpace(msg.ChatID))
	if err != nil {
		return fmt.Errorf("parse chat jid %q: %w", msg.ChatID, err)
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return nil
	}
	_, err = client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(content),
	})
	return err
}

func (c *Channel) handleEvent(ctx context.Context, evt any) {
	switch v := evt.(type) {
	case *events.Connected:
		c.log.Info().Msg("whatsapp session ready")
	case *events.LoggedOut:
		c.log.Warn().Msg("whatsapp session logged out, re-pairing required")
	case *events.Message:
		c.handleMessage(ctx, v)
	}
}

func (c *Channel) handleMessage(ctx context.Context, msg *events.Message) {
	if !relevantMessage(msg) {
		return
	}
	content := extractText(msg.Message)
	if content == "" {
		return
	}
	chatID := msg.Info.Chat.ToNonAD().String()

	_ = c.bus.PublishInbound(ctx, bus.InboundMessage{
		Channel:    "whatsapp",
		SenderID:   msg.Info.Sender.ToNonAD().String(),
		SenderName: strings.TrimSpace(msg.Info.PushName),
		ChatID:     chatID,
		Content:    content,
	})
}

// relevantMessage keeps direct text chats from other people. Own echoes
// and group chatter never reach the bot.
func relevantMessage(msg *events.Message) bool {
	if msg == nil || msg.Message == nil {
		return false
	}
	if msg.Info.IsFromMe || msg.Info.IsGroup {
		return false
	}
	return true
}

func extractText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if text := strings.TrimSpace(msg.GetConversation()); text != "" {
		return text
	}
	return strings.TrimSpace(msg.GetExtendedTextMessage().GetText())
}
