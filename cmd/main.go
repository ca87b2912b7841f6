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

	calculateFeeHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/calculate_fee"
	cancelBookingHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/create_booking"
	generateClassSlotsHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/generate_class_slots"
	generateSlotsHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/generate_slots"
	getBookingHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/get_day_schedule"
	getFacilityBookingsHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/get_facility_bookings"
	getRequesterBookingsHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/get_requester_bookings"
	updateBookingHandler "github.com/m04kA/CMS-FacilityService/internal/api/handlers/update_booking"
	"github.com/m04kA/CMS-FacilityService/internal/api/middleware"
	"github.com/m04kA/CMS-FacilityService/internal/config"
	bookingRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/CMS-FacilityService/internal/infra/storage/slot"
	userDirectoryClient "github.com/m04kA/CMS-FacilityService/internal/integrations/userdirectory"
	bookingsService "github.com/m04kA/CMS-FacilityService/internal/service/bookings"
	feesService "github.com/m04kA/CMS-FacilityService/internal/service/fees"
	createBookingUC "github.com/m04kA/CMS-FacilityService/internal/usecase/create_booking"
	generateClassSlotsUC "github.com/m04kA/CMS-FacilityService/internal/usecase/generate_class_slots"
	generateSlotsUC "github.com/m04kA/CMS-FacilityService/internal/usecase/generate_slots"
	getDayScheduleUC "github.com/m04kA/CMS-FacilityService/internal/usecase/get_day_schedule"
	updateBookingUC "github.com/m04kA/CMS-FacilityService/internal/usecase/update_booking"
	"github.com/m04kA/CMS-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/CMS-FacilityService/pkg/events"
	"github.com/m04kA/CMS-FacilityService/pkg/logger"
	"github.com/m04kA/CMS-FacilityService/pkg/metrics"
	"github.com/m04kA/CMS-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/CMS-FacilityService/pkg/txmanager"
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

	log.Info("Starting CMS-FacilityService...")
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

	// Инициализируем клиент справочника пользователей
	userDirClient := userDirectoryClient.NewClient(
		cfg.UserDirectory.URL,
		time.Duration(cfg.UserDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserDirectory=%s timeout=%ds)",
		cfg.UserDirectory.URL, cfg.UserDirectory.Timeout)

	// Инициализируем publisher событий бронирований (если включен)
	type EventPublisher interface {
		Publish(ctx context.Context, key string, event interface{}) error
	}
	var publisher EventPublisher = events.Noop{}
	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
		log.Info("Event publisher connected (exchange=%s)", cfg.RabbitMQ.Exchange)
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		slotRepository     *slotRepo.Repository
		facilityRepository *facilityRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	feeSvc := feesService.NewService(
		facilityRepository,
		userDirClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		facilityRepository,
		feeSvc,
		txMgr,
		publisher,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		txMgr,
		publisher,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		facilityRepository,
		log,
	)
	generateClassSlotsUseCase := generateClassSlotsUC.NewUseCase(
		slotRepository,
		bookingRepository,
		facilityRepository,
		txMgr,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		facilityRepository,
		slotRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingSvc, log)
	getRequesterBookings := getRequesterBookingsHandler.NewHandler(bookingSvc, log)
	calculateFee := calculateFeeHandler.NewHandler(feeSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	generateClassSlots := generateClassSlotsHandler.NewHandler(generateClassSlotsUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
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

	// Сводка доступности объектов на день
	api.HandleFunc("/facilities/day-schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Предварительный расчёт стоимости бронирования
	api.HandleFunc("/facilities/{facilityId}/fee", calculateFee.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Email header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований заказчика
	protected.HandleFunc("/bookings", getRequesterBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос бронирования на другое время
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление объектами (для администраторов) ---
	// Генерация почасовых слотов
	protected.HandleFunc("/facilities/{facilityId}/slots", generateSlots.Handle).Methods(http.MethodPost)

	// Генерация слотов регулярных занятий
	protected.HandleFunc("/facilities/{facilityId}/class-slots", generateClassSlots.Handle).Methods(http.MethodPost)

	// Список бронирований объекта
	protected.HandleFunc("/facilities/{facilityId}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

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

	log.Info("Server stopped gracefully")
}
