package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/assessment"
	"github.com/classquest/classquest/core/leaderboard"
	"github.com/classquest/classquest/core/quest"
	"github.com/classquest/classquest/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		UserSvc        user.Service
		AssessmentSvc  assessment.Service
		LeaderboardSvc leaderboard.Service
		QuestSvc       quest.Service
		Validate       *validator.Validate
		Translator     ut.Translator
		// Now returns the current time, used to date streaks and quests. Defaults to time.Now.
		Now func() time.Time
		// DisableReqLogs turns off the request logger middleware.
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1", middleware.JWTWithConfig(newJWTConfig(conf)))
	members := roleMiddleware(s.deps.UserSvc, user.AllRoles...)

	cg := v1.Group("/classrooms/:classroom", members, classroomMemberMiddleware(s.deps.UserSvc))
	registerAssessmentAPI(cg, &assessmentApi{
		svc:      s.deps.AssessmentSvc,
		usrSvc:   s.deps.UserSvc,
		validate: s.deps.Validate,
		logger:   s.deps.Logger,
		now:      s.deps.Now,
	})
	registerLeaderboardAPI(cg, &leaderboardApi{svc: s.deps.LeaderboardSvc})

	registerQuestAPI(v1.Group("/quests", members), &questApi{
		svc:      s.deps.QuestSvc,
		usrSvc:   s.deps.UserSvc,
		validate: s.deps.Validate,
		now:      s.deps.Now,
	})
}

// Start blocks until the server stops. A failure to serve is sent to Errors.
func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Classquest API!")
}
