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

	cancelAppointmentHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/create_appointment"
	createSlotHoldHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/create_slot_hold"
	deleteScheduleHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/delete_schedule"
	getAppointmentHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/get_client_appointments"
	getConsultantAppointmentsHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/get_consultant_appointments"
	getScheduleHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/get_schedule"
	rescheduleAppointmentHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/vkarpovs/CBP-BookingService/internal/api/handlers/update_schedule"
	"github.com/vkarpovs/CBP-BookingService/internal/api/middleware"
	"github.com/vkarpovs/CBP-BookingService/internal/config"
	appointmentRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/appointment"
	holdRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/hold"
	scheduleRepo "github.com/vkarpovs/CBP-BookingService/internal/infra/storage/schedule"
	directoryServiceClient "github.com/vkarpovs/CBP-BookingService/internal/integrations/directory"
	appointmentsService "github.com/vkarpovs/CBP-BookingService/internal/service/appointments"
	scheduleService "github.com/vkarpovs/CBP-BookingService/internal/service/schedule"
	createAppointmentUC "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_appointment"
	createSlotHoldUC "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_slot_hold"
	getAvailableSlotsUC "github.com/vkarpovs/CBP-BookingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/vkarpovs/CBP-BookingService/internal/usecase/reschedule_appointment"
	"github.com/vkarpovs/CBP-BookingService/internal/worker/holdsweeper"
	"github.com/vkarpovs/CBP-BookingService/pkg/dbmetrics"
	"github.com/vkarpovs/CBP-BookingService/pkg/logger"
	"github.com/vkarpovs/CBP-BookingService/pkg/metrics"
	"github.com/vkarpovs/CBP-BookingService/pkg/simpletxmanager"
	"github.com/vkarpovs/CBP-BookingService/pkg/txmanager"
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

	log.Info("Starting CBP-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент сервиса справочника
	directoryClient := directoryServiceClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		holdRepository        *holdRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		holdRepository = holdRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		holdRepository = holdRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, directoryClient, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		holdRepository,
		directoryClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		holdRepository,
		directoryClient,
		txMgr,
		log,
	)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		holdRepository,
		txMgr,
		log,
	)

	createSlotHoldUseCase := createSlotHoldUC.NewUseCase(
		holdRepository,
		appointmentRepository,
		scheduleRepository,
		directoryClient,
		txMgr,
		time.Duration(cfg.Holds.TTLSeconds)*time.Second,
		log,
	)

	// Запускаем фоновую зачистку истёкших броней
	sweeper := holdsweeper.NewSweeper(holdRepository, cfg.Holds.SweepSchedule, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start hold sweeper: %v", err)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	createSlotHold := createSlotHoldHandler.NewHandler(createSlotHoldUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getConsultantAppointments := getConsultantAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничение частоты запросов (если включено)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты консультанта на дату
	api.HandleFunc("/consultants/{consultantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание консультанта
	api.HandleFunc("/consultants/{consultantId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Временная бронь слота (идентифицируется токеном, не пользователем)
	api.HandleFunc("/slot-holds", createSlotHold.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи ---
	// Создание встречи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение встречи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена встречи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Подтверждение / завершение встречи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Перенос встречи
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// История встреч клиента
	protected.HandleFunc("/clients/{clientId}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет консультанта ---
	// Встречи консультанта за период
	protected.HandleFunc("/consultants/{consultantId}/appointments", getConsultantAppointments.Handle).Methods(http.MethodGet)

	// Замена расписания
	protected.HandleFunc("/consultants/{consultantId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Удаление расписания
	protected.HandleFunc("/consultants/{consultantId}/schedule", deleteSchedule.Handle).Methods(http.MethodDelete)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновую зачистку броней
	sweeper.Stop()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
