package main

import (
	"context"
	"net/http"
	"os"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"fanlink/analytics"
	"fanlink/compose"
	appConfig "fanlink/config"
	"fanlink/controller"
	"fanlink/database"
	"fanlink/handlers"
	"fanlink/metadata"
	"fanlink/playback"
	"fanlink/sentry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
	setupLogging()
	appConfig.NewConfig()
	sentry.Init()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func setupLogging() {
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		FieldsOrder:     []string{"module", "pageID"},
		TimestampFormat: "15:04:05",
	})

	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func run() error {
	var sink analytics.Sink = analytics.Nop{}
	var db *database.Database
	var dispatcher *analytics.Dispatcher

	if appConfig.Config.Analytics.IsEnabled() {
		var err error
		db, err = database.New()
		if err != nil {
			// Analytics are best-effort; the page engine runs
			// without them.
			log.Warnf("click analytics disabled: %v", err)
			sentry.ReportError(err)
		} else {
			dispatcher = analytics.NewDispatcher(db, appConfig.Config.Analytics.BufferSize)
			sink = dispatcher
			defer dispatcher.Close()
			defer db.Close()
		}
	}

	closeDelay := playback.DefaultCloseDelay
	if ms := appConfig.Config.Playback.CloseDelayMs; ms > 0 {
		closeDelay = time.Duration(ms) * time.Millisecond
	}

	ctrl := controller.NewController(sink, closeDelay)
	composer := compose.New(sink)
	enricher := metadata.NewEnricher(context.Background())

	manager := handlers.NewManager(composer, ctrl, enricher, db)

	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	manager.Register(router)

	port := appConfig.Config.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
