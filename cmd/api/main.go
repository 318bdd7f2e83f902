package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/auth"
	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/conversion"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/infra/worker"
	"github.com/xavierca1/ligue-leads/internal/notification"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	cfg := config.Load()

	logg := logger.Must(cfg.Env)
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Banco
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, logg); err != nil {
		logg.Fatal("migrations failed", zap.Error(err))
	}

	leadRepo := database.NewLeadRepository(db)
	messageRepo := database.NewMessageRepository(db)

	// 2. Redis (opcional): sem ele a deduplicação de conversão fica em memória
	var (
		rdb          *redis.Client
		memoryStore  *conversion.MemoryStore
		sessionStore conversion.SessionStore
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logg.Warn("redis unavailable, using in-memory conversion store", zap.Error(err))
			rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
			sessionStore = conversion.NewRedisStore(rdb, cfg.Conversion.SessionTTL)
		}
	}
	if sessionStore == nil {
		memoryStore = conversion.NewMemoryStore(cfg.Conversion.SessionTTL)
		sessionStore = memoryStore
	}

	// 3. RabbitMQ (opcional): sem ele os eventos de conversão só vão para o log
	var (
		rabbitMQ *queue.RabbitMQ
		emitter  conversion.Emitter = conversion.LogEmitter{Log: logg}
	)
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logg.Warn("rabbitmq unavailable, conversion events will only be logged", zap.Error(err))
		} else {
			defer rabbitMQ.Close()
			emitter = queue.NewProducer(rabbitMQ.Ch)
		}
	}

	// 4. Canais de notificação
	n := cfg.Notification
	var emailSender notification.EmailSender
	if n.MailHost != "" {
		emailSender = mail.NewEmailSender(n.MailHost, n.MailPort, n.MailUser, n.MailPass, n.MailFrom)
	} else {
		logg.Warn("MAIL_HOST not set, email channel disabled")
	}
	var whatsappSender notification.WhatsAppSender
	if n.WhatsAppEnabled {
		whatsappSender = whatsapp.NewClient(n.WhatsAppAccessToken, n.WhatsAppPhoneID, n.WhatsAppAPIURL)
	}

	dispatcher := notification.NewDispatcher(emailSender, whatsappSender, notification.Options{
		Recipients:                  n.Recipients,
		CustomerConfirmationEnabled: n.CustomerConfirmationEnabled,
		WhatsAppEnabled:             n.WhatsAppEnabled,
		WhatsAppTo:                  n.WhatsAppTo,
		Timeout:                     n.Timeout,
	}, logg, middleware.RecordNotification)

	tracker := conversion.NewTracker(sessionStore, emitter, conversion.Config{
		AdsConversionID:    cfg.Conversion.AdsConversionID,
		AdsConversionLabel: cfg.Conversion.AdsConversionLabel,
	}, logg)
	tracker.OnEmitted = middleware.RecordConversion

	// 5. UseCases
	validator := usecase.NewValidator()
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, dispatcher, validator, logg)
	createLeadUC.OnCreated = middleware.RecordLeadCaptured
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo, validator, logg)
	getLeadUC := usecase.NewGetLeadUseCase(leadRepo)
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo, validator)
	listMessagesUC := usecase.NewListMessagesUseCase(messageRepo)

	// 6. Sessão do portal
	sessions := auth.NewSessionManager(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)
	accounts := []auth.Account{
		{
			Credentials: auth.Credentials{Username: cfg.Admin.Username, Password: cfg.Admin.Password, PasswordHash: cfg.Admin.PasswordHash},
			Role:        auth.RoleManagement,
		},
		{
			Credentials: auth.Credentials{Username: cfg.Admin.SalesUsername, Password: cfg.Admin.SalesPassword, PasswordHash: cfg.Admin.SalesPasswordHash},
			Role:        auth.RoleSales,
		},
	}
	if !cfg.Admin.Configured() {
		logg.Warn("admin login not configured, /api/admin/login will answer 503")
	}
	if cfg.IsProduction() && !cfg.Admin.CookieSecure {
		logg.Warn("COOKIE_SECURE=false in production, session cookies will travel over plain HTTP")
	}
	if !cfg.Admin.BasicConfigured() {
		logg.Warn("admin basic auth not configured, /api/admin/* will answer 404")
	}

	// 7. Worker
	staleWorker := worker.NewStaleLeadWorker(leadRepo, cfg.StaleLeadAfter, middleware.SetLeadsAwaitingContact, logg)
	go staleWorker.Start(ctx)

	limiter := handlers.NewRateLimiter(cfg.LeadRateLimit, time.Minute)
	go limiter.Cleanup(ctx.Done(), 10*time.Minute)
	if memoryStore != nil {
		go memoryStore.Cleanup(ctx.Done(), 10*time.Minute)
	}

	// 8. Router
	rt := routes{
		Lead:           handlers.NewLeadHandler(createLeadUC, limiter, logg),
		Conversion:     handlers.NewConversionHandler(tracker, cfg.Admin.CookieSecure, logg),
		AdminAuth:      handlers.NewAdminAuthHandler(accounts, sessions, cfg.Admin.CookieSecure, logg),
		AdminLeads:     handlers.NewAdminLeadHandler(listLeadsUC, getLeadUC, updateLeadUC),
		Messages:       handlers.NewMessageHandler(listMessagesUC),
		Health:         handlers.NewHealthHandler(db, rdb, nil),
		Sessions:       sessions,
		BasicUser:      cfg.Admin.BasicUser,
		BasicPassword:  cfg.Admin.BasicPassword,
		FrontendOrigin: cfg.FrontendOrigin,
		Log:            logg,
	}
	if rabbitMQ != nil {
		rt.Health.RabbitMQ = rabbitMQ.Conn
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           newRouter(rt),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("🔥 lead service listening", zap.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("http shutdown failed", zap.Error(err))
	}
	// Notificações em andamento podem se perder se o prazo estourar; o lead já está salvo.
	if err := createLeadUC.Wait(shutdownCtx); err != nil {
		logg.Warn("pending notifications abandoned", zap.Error(err))
	}
}
