package tests

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	. "github.com/classquest/classquest/apps/api/echo"
	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/assessment"
	"github.com/classquest/classquest/core/leaderboard"
	"github.com/classquest/classquest/core/quest"
	"github.com/classquest/classquest/core/question"
	"github.com/classquest/classquest/core/user"
	"github.com/classquest/classquest/storage/database/dummy"
)

var (
	conf = &core.Config{
		AppName:   "Classquest",
		TestMode:  true,
		SecretKey: "secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}
	now = time.Date(2026, time.September, 14, 10, 30, 0, 0, time.UTC)

	usrRepo      user.Repository
	questionRepo question.Repository
	ledger       assessment.Ledger
	questStore   quest.Store
	logger       *loggerMock

	errMissingToken      = httpErr{Error: "missing or malformed jwt"}
	errForbidden         = httpErr{Error: "permission denied"}
	errClassroomNotFound = httpErr{Error: "classroom not found", Kind: "not_found"}
)

// setup builds a server backed by a fresh in-memory database. overrides may replace any dependency.
func setup(t *testing.T, overrides ...func(*ServerDeps)) Server {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	questionRepo = dummydb.NewQuestionRepository(db)
	ledger = dummydb.NewAttemptRepository(db)
	questStore = dummydb.NewQuestRepository(db)
	logger = new(loggerMock)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	question.InitValidators(validate, translator)

	usrSvc := user.NewService(usrRepo)
	deps := ServerDeps{
		Conf:    conf,
		Logger:  logger,
		UserSvc: usrSvc,
		AssessmentSvc: assessment.NewService(questionRepo, ledger, assessment.Options{
			Now:     func() time.Time { return now },
			NewRand: func() *rand.Rand { return rand.New(rand.NewSource(7)) },
		}),
		LeaderboardSvc: leaderboard.NewService(usrSvc),
		QuestSvc:       quest.NewService(questStore, usrSvc),
		Validate:       validate,
		Translator:     translator,
		Now:            func() time.Time { return now },
		DisableReqLogs: true,
	}
	for _, override := range overrides {
		override(&deps)
	}
	return NewServer(deps)
}

type loggerMock struct {
	mu     sync.Mutex
	errors []string
}

func (l *loggerMock) Debug(string, ...interface{}) {}
func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Fatal(string, ...interface{}) {}

func (l *loggerMock) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *loggerMock) Errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

type httpErr struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (tt httpTest) run(t *testing.T, app Server) *httptest.ResponseRecorder {
	t.Helper()
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	if tt.wantData != nil {
		checkCodeAndData(t, tt, rec)
	} else if tt.wantCode != 0 && rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, usr user.User) string {
	token, err := GenerateToken(GetUserClaims(usr, conf), conf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func unmarshalBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("json.Unmarshal(%s) failed: %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
