package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/lesson"
	"github.com/darasahq/darasa/core/quiz"
	"github.com/darasahq/darasa/core/track"
	logsvc "github.com/darasahq/darasa/services/logger"
	"github.com/darasahq/darasa/services/quizapi"
	dummyquizapi "github.com/darasahq/darasa/services/quizapi/dummy"
	"github.com/darasahq/darasa/services/trackapi"
	dummytrackapi "github.com/darasahq/darasa/services/trackapi/dummy"
	"github.com/darasahq/darasa/storage/database"
	dummydb "github.com/darasahq/darasa/storage/database/dummy"
	sqlxrepos "github.com/darasahq/darasa/storage/database/sqlx"
)

// TODO: swagger; APM/Tracing
func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(
			log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(
			log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
			conf,
		)
		// only ship events from production
		rollbarLogger.Enable(conf.IsProd())
		logger = rollbarLogger
	}

	// set up DB
	lessonRepo, closeDB, err := setUpLessonRepository(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer closeDB()

	// set up external collaborators
	var (
		quizAPI  quiz.API
		trackAPI track.API
	)
	if conf.Debug {
		quizAPI = dummyquizapi.NewService()
		trackAPI = dummytrackapi.NewService()
	} else {
		quizAPI = quizapi.NewClient(conf, logger)
		trackAPI = trackapi.NewClient(conf, logger)
	}

	// set up services
	lessonSvc := lesson.NewService(lessonRepo, logger)
	quizSvc := quiz.NewService(quizAPI, logger)
	trackSvc := track.NewService(trackAPI, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		conf,
		&echoapi.Options{
			Addr:       conf.Address(),
			AppLogger:  logger,
			Validate:   validate,
			Translator: translator,
			LessonSvc:  lessonSvc,
			QuizSvc:    quizSvc,
			TrackSvc:   trackSvc,
		},
		shutdown,
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

// setUpLessonRepository opens the configured storage backend. An empty
// Database.Engine selects the in-memory store; handy for local hacking
// without a postgres around.
func setUpLessonRepository(conf *core.Config) (lesson.Repository, func(), error) {
	if conf.Database.Engine == "" {
		db, err := dummydb.Open()
		if err != nil {
			return nil, nil, err
		}
		return dummydb.NewLessonRepository(db), func() {}, nil
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, err
	}
	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sqlxrepos.NewLessonRepository(db), func() { _ = db.Close() }, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
