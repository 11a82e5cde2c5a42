package wa

import (
	"context"
	"fmt"
	"os"

	"github.com/mdp/qrterminal"
	log "github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

// MessageHandler receives every incoming chat message.
type MessageHandler func(ctx context.Context, client *whatsmeow.Client, evt *events.Message)

type Service struct {
	client         *whatsmeow.Client
	dbPath         string
	log            walog.Logger
	messageHandler MessageHandler
}

// NewService keeps the whatsmeow device store in the SQLite file at dbPath.
func NewService(dbPath string, logger walog.Logger) *Service {
	return &Service{
		dbPath: dbPath,
		log:    logger,
	}
}

func (s *Service) Initialize(ctx context.Context) error {
	// WAL mode sticks to the file, busy_timeout is per connection
	dbAddress := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbPath)
	container, err := sqlstore.New(ctx, "sqlite", dbAddress, s.log.Sub("Database"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log.Sub("Client"))
	s.registerEventHandlers()

	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) registerEventHandlers() {
	s.client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Message:
			if s.messageHandler != nil {
				go s.messageHandler(context.Background(), s.client, v)
			}
		case *events.Connected:
			log.Info("WhatsApp connected")
		case *events.LoggedOut:
			log.WithField("reason", v.Reason.String()).Warn("WhatsApp session logged out")
		}
	})
}

func (s *Service) GetClient() *whatsmeow.Client {
	return s.client
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

// Reply sends text to the chat a message came from.
func (s *Service) Reply(ctx context.Context, chat types.JID, text string) error {
	_, err := s.client.SendMessage(ctx, chat, &waE2E.Message{Conversation: &text})
	return err
}

// SendText sends text to a user's private chat. userID is a phone number
// as stored in the profiles.
func (s *Service) SendText(ctx context.Context, userID, text string) error {
	if s.client == nil || !s.client.IsConnected() {
		return fmt.Errorf("client not connected")
	}
	return s.Reply(ctx, types.NewJID(userID, types.DefaultUserServer), text)
}

func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}

	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}

	// PairPhone(phone, showPushNotification, clientType, clientDisplayName)
	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and prints login QR codes until the login finishes.
func (s *Service) PrintQR(ctx context.Context) {
	if s.client.Store.ID != nil {
		return
	}

	qrChan, _ := s.client.GetQRChannel(ctx)
	if err := s.client.Connect(); err != nil {
		log.WithError(err).Error("Failed to connect for QR")
		return
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			fmt.Println("QR Code:", evt.Code)
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			log.WithField("event", evt.Event).Info("Login event")
		}
	}
}

// MessageText extracts the plain text of a message, or "" for media and
// other message types.
func MessageText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if msg.Conversation != nil {
		return *msg.Conversation
	}
	if msg.ExtendedTextMessage != nil && msg.ExtendedTextMessage.Text != nil {
		return *msg.ExtendedTextMessage.Text
	}
	return ""
}

// IsLID reports whether jid is a linked-device identifier rather than a
// phone number.
func IsLID(jid types.JID) bool {
	return jid.Server == types.HiddenUserServer || (jid.Server == types.DefaultUserServer && len(jid.User) > 15)
}
