package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/fardannozami/quitzone/internal/api"
	"github.com/fardannozami/quitzone/internal/app"
	"github.com/fardannozami/quitzone/internal/config"
	"github.com/fardannozami/quitzone/internal/infra/sqlite"
	"github.com/fardannozami/quitzone/internal/infra/wa"
	"github.com/fardannozami/quitzone/internal/jobs"
	"github.com/fardannozami/quitzone/internal/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Logger
	logCloser, err := logger.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	// calendar days are cut in the app timezone
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid timezone: %v", err)
	}
	time.Local = loc

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Storage & Use Cases
	repos, closeStore, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeStore()
	uc := app.NewUsecases(repos, cfg)

	// whatsmeow keeps its device store and LID map in the SQLite file
	waDB, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open WhatsApp database: %v", err)
	}
	defer waDB.Close()
	lids := sqlite.NewLIDResolver(waDB)

	// 4. WhatsApp Service
	waService := wa.NewService(cfg.SQLitePath, logger.WA("WhatsApp"))

	// 5. Register Message Handler
	waService.SetMessageHandler(func(ctx context.Context, client *whatsmeow.Client, evt *events.Message) {
		if cfg.GroupID != "" && evt.Info.Chat.String() != cfg.GroupID {
			return
		}
		if evt.Info.IsFromMe {
			return
		}

		msg := wa.MessageText(evt.Message)
		if msg == "" {
			return
		}

		// resolve LID to phone number for consistent user tracking
		userID := evt.Info.Sender.User
		if wa.IsLID(evt.Info.Sender) {
			userID = lids.ResolveLIDToPhone(ctx, userID)
		}

		pushName := evt.Info.PushName
		if pushName == "" {
			pushName = "Unknown"
		}

		entry := log.WithFields(log.Fields{
			"request_id": uuid.NewString(),
			"user_id":    userID,
			"name":       pushName,
		})
		entry.WithField("text", msg).Debug("Message received")

		response, err := uc.HandleMessage.Execute(ctx, userID, pushName, msg)
		if err != nil {
			entry.WithError(err).Error("Error handling message")
			return
		}
		if response == "" {
			return
		}

		delayMs := cfg.ReplyDelayMinMs
		if cfg.ReplyDelayMaxMs > cfg.ReplyDelayMinMs {
			delayMs = cfg.ReplyDelayMinMs + rand.Intn(cfg.ReplyDelayMaxMs-cfg.ReplyDelayMinMs+1)
		}

		if delayMs > 0 {
			if cfg.ShowTyping {
				_ = client.SendChatPresence(ctx, evt.Info.Chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
			}

			entry.WithField("delay_ms", delayMs).Debug("Delaying reply")
			time.Sleep(time.Duration(delayMs) * time.Millisecond)

			if cfg.ShowTyping {
				_ = client.SendChatPresence(ctx, evt.Info.Chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
			}
		}

		if err := waService.Reply(ctx, evt.Info.Chat, response); err != nil {
			entry.WithError(err).Error("Failed to send response")
		}
	})

	// 6. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	if err := waService.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	// 7. Connect / Login Logic
	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			if err := waService.Connect(); err != nil {
				log.Fatalf("Failed to connect for pairing: %v", err)
			}

			log.WithField("phone", cfg.BotPhone).Info("Not logged in. Attempting to pair")
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				log.WithError(err).Error("Failed to generate pair code")
			} else {
				log.Info("==================================================")
				log.Infof("PAIR CODE: %s", code)
				log.Info("==================================================")
				log.Info("Please verify this code on your WhatsApp (Linked Devices > Link with phone number)")
			}
		} else {
			log.Info("Not logged in. BOT_PHONE not set. Printing QR...")
			// PrintQR handles GetQRChannel AND Connect() internally to ensure no race condition
			go waService.PrintQR(ctx)
		}
	} else {
		if err := waService.Connect(); err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		log.Info("Client is already logged in.")
	}

	// 8. Reminders
	scheduler := jobs.NewScheduler(uc.SendReminders, waService.SendText, loc, cfg.ReminderCron)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// 9. HTTP API
	apiErr := make(chan error, 1)
	if cfg.HTTPAddr != "" {
		srv := api.NewServer(api.Config{Addr: cfg.HTTPAddr}, uc)
		go func() { apiErr <- srv.Run(ctx) }()
	}

	log.Info("Bot is running... Press Ctrl+C to exit.")

	select {
	case <-ctx.Done():
	case err := <-apiErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("HTTP API stopped")
		}
	}

	log.Info("Shutting down...")
	stop()
	scheduler.Stop()
	waService.Disconnect()
}
