package tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	echoapi "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/lesson"
	"github.com/darasahq/darasa/core/quiz"
	"github.com/darasahq/darasa/core/track"
	"github.com/darasahq/darasa/core/user"
	logsvc "github.com/darasahq/darasa/services/logger"
	dummyquizapi "github.com/darasahq/darasa/services/quizapi/dummy"
	dummytrackapi "github.com/darasahq/darasa/services/trackapi/dummy"
	dummydb "github.com/darasahq/darasa/storage/database/dummy"
)

var (
	conf       *core.Config
	app        echoapi.Server
	lessonRepo lesson.Repository
	quizAPI    *dummyquizapi.Service
	trackAPI   *dummytrackapi.Service

	teacher = user.User{ID: "usr-teacher", Name: "Teacher", Username: "teacher", Email: "teacher@test.cd", Roles: []string{user.RoleTeacher}}
	student = user.User{ID: "usr-student", Name: "Hero", Username: "hero", Email: "hero@test.cd", Roles: []string{user.RoleStudent}}
	admin   = user.User{ID: "usr-admin", Name: "Admin", Username: "admin", Email: "admin@test.cd", Roles: []string{user.RoleAdmin}}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	conf = &core.Config{TestMode: true, Env: "TEST", AppName: "Darasa", SecretKey: []byte("secret")}
	conf.Server.JWTExpirationDelta = 1 * time.Hour

	logger := logsvc.NewConsoleLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags))

	// set up storage & collaborators
	db, _ := dummydb.Open()
	lessonRepo = dummydb.NewLessonRepository(db)
	quizAPI = dummyquizapi.NewService()
	trackAPI = dummytrackapi.NewService()

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up server
	app = echoapi.NewServer(
		conf,
		&echoapi.Options{
			DisableReqLogs: true,
			AppLogger:      logger,
			Validate:       validate,
			Translator:     translator,
			LessonSvc:      lesson.NewService(lessonRepo, logger),
			QuizSvc:        quiz.NewService(quizAPI, logger),
			TrackSvc:       track.NewService(trackAPI, logger),
		},
		make(chan os.Signal, 1),
	)

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
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

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	token, err := echoapi.GenerateToken(conf, echoapi.GetUserClaims(conf, usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
	}
}
