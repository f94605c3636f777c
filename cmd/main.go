package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applyBookingActionHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/apply_booking_action"
	createBlockHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/delete_block"
	getBookingHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/get_booking"
	getDayStatusHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/get_day_status"
	getTeamAvailabilityHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/get_team_availability"
	getTeamCoverageHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/get_team_coverage"
	syncMemberCalendarHandler "github.com/m04kA/SMC-TeamScheduling/internal/api/handlers/sync_member_calendar"
	"github.com/m04kA/SMC-TeamScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-TeamScheduling/internal/config"
	bookingRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/booking"
	calendarCacheRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/calendarcache"
	manualBlockRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/manualblock"
	memberRepo "github.com/m04kA/SMC-TeamScheduling/internal/infra/storage/member"
	"github.com/m04kA/SMC-TeamScheduling/internal/integrations/googlecalendar"
	"github.com/m04kA/SMC-TeamScheduling/internal/service/availability"
	blocksService "github.com/m04kA/SMC-TeamScheduling/internal/service/blocks"
	bookingsService "github.com/m04kA/SMC-TeamScheduling/internal/service/bookings"
	applyBookingActionUC "github.com/m04kA/SMC-TeamScheduling/internal/usecase/apply_booking_action"
	getDayStatusUC "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_day_status"
	getTeamAvailabilityUC "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_availability"
	getTeamCoverageUC "github.com/m04kA/SMC-TeamScheduling/internal/usecase/get_team_coverage"
	syncMemberCalendarUC "github.com/m04kA/SMC-TeamScheduling/internal/usecase/sync_member_calendar"
	"github.com/m04kA/SMC-TeamScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeamScheduling/pkg/logger"
	"github.com/m04kA/SMC-TeamScheduling/pkg/metrics"
	"github.com/m04kA/SMC-TeamScheduling/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TeamScheduling...")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}

	// Метрики опциональны: nil *metrics.Metrics безопасен для всех вызовов
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	memberRepository := memberRepo.NewRepository(wrappedDB)
	blockRepository := manualBlockRepo.NewRepository(wrappedDB)
	cacheRepository := calendarCacheRepo.NewRepository(wrappedDB)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Интеграция с Google Calendar
	if !cfg.Calendar.Enabled() {
		log.Warn("Google Calendar credentials are not set, connected members will be served from cache")
	}
	calendarClient, err := googlecalendar.NewClient(context.Background(), googlecalendar.Config{
		ClientID:     cfg.Calendar.ClientID,
		ClientSecret: cfg.Calendar.ClientSecret,
		RefreshToken: cfg.Calendar.RefreshToken,
		Endpoint:     cfg.Calendar.Endpoint,
		Timeout:      time.Duration(cfg.Calendar.Timeout) * time.Second,
		Location:     location,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize Google Calendar client: %v", err)
	}

	// Ядро расчёта занятости
	merger := availability.NewMerger(
		calendarClient,
		bookingRepository,
		blockRepository,
		cacheRepository,
		txManager,
		cfg.Scheduling.FetchTimeoutDuration(),
		metricsCollector,
		log,
	)
	guard := availability.NewConflictGuard(merger, bookingRepository, log)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, memberRepository, log)
	blockSvc := blocksService.NewService(blockRepository, memberRepository, location, log)

	// Use cases
	getTeamAvailabilityUseCase := getTeamAvailabilityUC.NewUseCase(
		memberRepository,
		merger,
		cfg.Scheduling.FanOut,
		metricsCollector,
		log,
	)
	getDayStatusUseCase := getDayStatusUC.NewUseCase(memberRepository, merger, log)
	getTeamCoverageUseCase := getTeamCoverageUC.NewUseCase(memberRepository, merger, cfg.Scheduling.FanOut, log)
	applyBookingActionUseCase := applyBookingActionUC.NewUseCase(
		bookingRepository,
		memberRepository,
		guard,
		txManager,
		location,
		metricsCollector,
		log,
	)
	syncMemberCalendarUseCase := syncMemberCalendarUC.NewUseCase(
		memberRepository,
		merger,
		cfg.Scheduling.SyncHorizonDays,
		location,
		log,
	)

	// Handlers
	getTeamAvailability := getTeamAvailabilityHandler.NewHandler(getTeamAvailabilityUseCase, location, log)
	getDayStatus := getDayStatusHandler.NewHandler(getDayStatusUseCase, location, log)
	getTeamCoverage := getTeamCoverageHandler.NewHandler(getTeamCoverageUseCase, location, log)
	applyBookingAction := applyBookingActionHandler.NewHandler(applyBookingActionUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	syncMemberCalendar := syncMemberCalendarHandler.NewHandler(syncMemberCalendarUseCase, log)
	createBlock := createBlockHandler.NewHandler(blockSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Занятость ---
	api.HandleFunc("/teams/{teamId}/availability", getTeamAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/teams/{teamId}/coverage", getTeamCoverage.Handle).Methods(http.MethodGet)
	api.HandleFunc("/members/{memberId}/day-status", getDayStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/members/{memberId}/calendar/sync", syncMemberCalendar.Handle).Methods(http.MethodPost)

	// --- Ручные блокировки ---
	api.HandleFunc("/members/{memberId}/blocks", createBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/members/{memberId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/actions", applyBookingAction.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
