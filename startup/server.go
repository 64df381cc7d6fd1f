package startup

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"booking_service/casbinAuthorization"
	"booking_service/domain"
	"booking_service/handlers"
	"booking_service/notifier"
	application "booking_service/service"
	"booking_service/startup/config"
	"booking_service/store"

	"github.com/casbin/casbin"
	"github.com/go-redis/redis"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

const LogFilePath = "/app/logs/booking.log"

type Server struct {
	config *config.Config
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

var Logger = logrus.New()

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Message,
	)
	return []byte(msg), nil
}

func initLogger() {
	Logger.SetFormatter(&CustomFormatter{})

	writer, err := rotatelogs.New(
		LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		Logger.Warnf("log rotation unavailable, logging to stdout: %v", err)
		Logger.SetOutput(os.Stdout)
		return
	}
	Logger.SetOutput(writer)
}

func (server *Server) Start() {
	initLogger()

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	mongoClient := server.initMongoClient(httpClient)
	defer func(mongoClient *mongo.Client, ctx context.Context) {
		if err := mongoClient.Disconnect(ctx); err != nil {
			Logger.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}(mongoClient, context.Background())

	redisClient := server.initRedisClient()

	ctx := context.Background()
	tp := server.initTraceProvider()
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tracer := tp.Tracer("booking_service")

	reservationStore := store.NewReservationMongoDBStore(mongoClient, tracer, Logger)
	newsStore := store.NewNewsMongoDBStore(mongoClient, tracer, Logger)
	adminStore := store.NewAdminMongoDBStore(mongoClient, tracer)
	sessionCache := store.NewSessionRedisCache(redisClient, tracer, Logger)

	chatNotifier := notifier.NewTelegramNotifier(server.config.TelegramBotToken, server.config.TelegramChatID, Logger)
	emailNotifier := server.initEmailNotifier()

	reservationService := application.NewReservationService(reservationStore, chatNotifier, emailNotifier, tracer, Logger)
	adminService := application.NewAdminService(reservationStore, adminStore, sessionCache, tracer, Logger)
	newsService := application.NewNewsService(newsStore, tracer, Logger)

	reservationHandler := handlers.NewReservationHandler(reservationService, tracer, Logger)
	adminHandler := handlers.NewAdminHandler(adminService, tracer, Logger)
	newsHandler := handlers.NewNewsHandler(newsService, tracer, Logger)

	server.start(reservationHandler, adminHandler, newsHandler)
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	client, err := store.GetClientWithHTTPConfig(server.config.BookingDBHost, server.config.BookingDBPort, httpClient)
	if err != nil {
		Logger.Fatal(err)
	}
	return client
}

func (server *Server) initRedisClient() *redis.Client {
	client, err := store.GetRedisClient(server.config.SessionCacheHost, server.config.SessionCachePort)
	if err != nil {
		Logger.Fatal(err)
	}
	return client
}

func (server *Server) initEmailNotifier() domain.Notifier {
	smtpPort, err := strconv.Atoi(server.config.SMTPPort)
	if err != nil {
		smtpPort = 587
	}
	return notifier.NewEmailNotifier(
		server.config.SMTPHost,
		smtpPort,
		server.config.SMTPUser,
		server.config.SMTPPassword,
		server.config.EmailFromAddress,
		Logger,
	)
}

func (server *Server) initTraceProvider() *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("booking_service"),
		),
	)
	if err != nil {
		Logger.Fatal(err)
	}

	if server.config.JaegerAddress == "" {
		Logger.Warn("no Jaeger address configured, traces are not exported")
		return sdktrace.NewTracerProvider(sdktrace.WithResource(r))
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(server.config.JaegerAddress)))
	if err != nil {
		Logger.Fatalf("Failed to initialize exporter: %v", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func (server *Server) start(reservationHandler *handlers.ReservationHandler, adminHandler *handlers.AdminHandler, newsHandler *handlers.NewsHandler) {
	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		Logger.Fatal(err)
	}

	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)

	reservationHandler.Init(router)
	newsHandler.InitPublic(router)
	adminHandler.InitPublic(router)

	adminRouter := router.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(adminHandler.MiddlewareSession)
	adminHandler.Init(adminRouter)
	newsHandler.InitAdmin(adminRouter)

	cors := gorillaHandlers.CORS(gorillaHandlers.AllowedOrigins([]string{"*"}))
	casbinMiddleware := casbinAuthorization.CasbinMiddleware(enforcer, Logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", server.config.Port),
		Handler:      cors(casbinMiddleware(router)),
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		Logger.Infof("Server listening on port %s", server.config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			Logger.Fatal(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		Logger.Fatalf("Error shutting down server: %s", err)
	}
	Logger.Info("Server gracefully stopped")
}

func healthCheck(rw http.ResponseWriter, req *http.Request) {
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte(`{"status":"ok"}`))
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
