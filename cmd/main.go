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

	cancelAppointmentHandler "github.com/pablobarber/booking-service/internal/api/handlers/cancel_appointment"
	cancelBookingHandler "github.com/pablobarber/booking-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/pablobarber/booking-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/pablobarber/booking-service/internal/api/handlers/create_booking"
	getAppointmentHandler "github.com/pablobarber/booking-service/internal/api/handlers/get_appointment"
	getAppointmentsByEmailHandler "github.com/pablobarber/booking-service/internal/api/handlers/get_appointments_by_email"
	getAvailableSlotsHandler "github.com/pablobarber/booking-service/internal/api/handlers/get_available_slots"
	getServicesHandler "github.com/pablobarber/booking-service/internal/api/handlers/get_services"
	getStaffHandler "github.com/pablobarber/booking-service/internal/api/handlers/get_staff"
	"github.com/pablobarber/booking-service/internal/api/middleware"
	"github.com/pablobarber/booking-service/internal/config"
	"github.com/pablobarber/booking-service/internal/domain"
	apptRepo "github.com/pablobarber/booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/pablobarber/booking-service/internal/infra/storage/catalog"
	staffRepo "github.com/pablobarber/booking-service/internal/infra/storage/staff"
	"github.com/pablobarber/booking-service/internal/integrations/googlecalendar"
	"github.com/pablobarber/booking-service/internal/integrations/mailer"
	appointmentsService "github.com/pablobarber/booking-service/internal/service/appointments"
	catalogService "github.com/pablobarber/booking-service/internal/service/catalog"
	cancelBookingUC "github.com/pablobarber/booking-service/internal/usecase/cancel_booking"
	confirmBookingUC "github.com/pablobarber/booking-service/internal/usecase/confirm_booking"
	createBookingUC "github.com/pablobarber/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/pablobarber/booking-service/internal/usecase/get_available_slots"
	"github.com/pablobarber/booking-service/pkg/dbmetrics"
	"github.com/pablobarber/booking-service/pkg/logger"
	"github.com/pablobarber/booking-service/pkg/metrics"
	"github.com/pablobarber/booking-service/pkg/simpletxmanager"
	"github.com/pablobarber/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")

	// Собираем расписание салона
	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Schedule.Timezone, err)
	}
	schedule := domain.Schedule{
		OpenHour:      cfg.Schedule.OpenHour,
		CloseHour:     cfg.Schedule.CloseHour,
		SlotMinutes:   cfg.Schedule.SlotMinutes,
		ClosedWeekday: time.Weekday(cfg.Schedule.ClosedWeekday),
		HoldWindow:    cfg.Schedule.HoldWindow(),
		Location:      loc,
	}
	log.Info("Schedule: %02d:00-%02d:00, slot %dm, closed on %s, hold %dm, tz %s",
		schedule.OpenHour, schedule.CloseHour, schedule.SlotMinutes,
		schedule.ClosedWeekday, cfg.Schedule.HoldMinutes, cfg.Schedule.Timezone)

	// Инициализируем метрики (если включены)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Интеграция с Google Calendar (опциональная)
	var (
		slotsCalendar   getAvailableSlotsUC.CalendarClient
		confirmCalendar confirmBookingUC.CalendarClient
		apptsCalendar   appointmentsService.CalendarClient
	)
	if cfg.GoogleCalendar.Enabled {
		gcal := googlecalendar.NewClient(
			cfg.GoogleCalendar.CalendarID,
			cfg.GoogleCalendar.ClientEmail,
			cfg.GoogleCalendar.PrivateKey,
			time.Duration(cfg.GoogleCalendar.Timeout)*time.Second,
			loc,
			log,
		)
		slotsCalendar, confirmCalendar, apptsCalendar = gcal, gcal, gcal
		log.Info("Google Calendar integration enabled (calendar=%s)", cfg.GoogleCalendar.CalendarID)
	} else {
		log.Warn("Google Calendar integration disabled")
	}

	// Рассылка писем подтверждения (опциональная)
	var mailClient createBookingUC.Mailer
	if cfg.Email.Enabled {
		mailClient = mailer.NewClient(mailer.Config{
			SMTPHost:   cfg.Email.SMTPHost,
			SMTPPort:   cfg.Email.SMTPPort,
			User:       cfg.Email.User,
			Password:   cfg.Email.Password,
			From:       cfg.Email.From,
			AppBaseURL: cfg.Email.AppBaseURL,
		}, log)
		log.Info("Email sending enabled (smtp=%s:%d)", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
	} else {
		log.Warn("Email sending disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *apptRepo.Repository
		staffRepository       *staffRepo.Repository
		catalogRepository     *catalogRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = apptRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = apptRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	apptSvc := appointmentsService.NewService(
		appointmentRepository,
		staffRepository,
		apptsCalendar,
		schedule,
		cfg.Auth.AdminEmail,
		log,
	)
	catalogSvc := catalogService.NewService(staffRepository, catalogRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		staffRepository,
		slotsCalendar,
		schedule,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		staffRepository,
		catalogRepository,
		mailClient,
		txMgr,
		schedule,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		appointmentRepository,
		staffRepository,
		confirmCalendar,
		schedule,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(appointmentRepository, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, schedule.Location, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, schedule.Location, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(apptSvc, log)
	getAppointmentsByEmail := getAppointmentsByEmailHandler.NewHandler(apptSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(apptSvc, log)
	getStaff := getStaffHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; идентификация по заголовку применяется ко всем ручкам,
	// проверки доступа выполняются на уровне сервисов
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Доступные слоты на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог салона
	api.HandleFunc("/staff", getStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Создание записи (гостевая запись разрешена)
	api.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)

	// Ссылки из письма; регистрируются до /appointments/{id}
	api.HandleFunc("/appointments/confirm", confirmBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/cancel", cancelBooking.Handle).Methods(http.MethodGet)

	// Просмотр и отмена существующих записей
	api.HandleFunc("/appointments", getAppointmentsByEmail.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", cancelAppointment.Handle).Methods(http.MethodDelete)

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
