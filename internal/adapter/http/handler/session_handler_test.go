package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/routes"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/pkg/auth"
	"taskapp/pkg/test"
)

type SessionHandlerSuite struct {
	suite.Suite
	userRepo port.UserRepository
	router   *gin.Engine
}

func (s *SessionHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := test.InitTestDB(s.T())

	s.userRepo = repository.NewUserRepository(db)
	jwt := auth.NewJWT("test-secret", 30*time.Second)

	sessionSvc := service.NewSessionService(s.userRepo, jwt)
	userSvc := service.NewUserService(s.userRepo)

	s.router = routes.SetupRouterForTests(routes.HandlersConfig{
		SessionHandler: handler.NewSessionHandler(sessionSvc, nil),
		UserHandler:    handler.NewUserHandler(userSvc),
	}, routes.GateConfig{
		Users: s.userRepo,
		Token: jwt,
	})
}

func TestSessionHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(SessionHandlerSuite))
}

func (s *SessionHandlerSuite) do(method, path, body string, headers ...[2]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))

	for _, h := range headers {
		req.Header.Set(h[0], h[1])
	}

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	return rr
}

func parseBody(rr *httptest.ResponseRecorder) map[string]any {
	data := map[string]any{}
	json.Unmarshal(rr.Body.Bytes(), &data)
	return data
}

func (s *SessionHandlerSuite) signUp() map[string]any {
	rr := s.do("POST", "/users", `{"username": "eu@test.com", "password": "Longenough1!"}`)
	s.Require().Equal(http.StatusCreated, rr.Code)
	return parseBody(rr)
}

func (s *SessionHandlerSuite) TestSignUpSuccess() {
	data := s.signUp()

	Expect(data["username"]).To(Equal("eu@test.com"))
	Expect(data["token"]).ToNot(BeEmpty())
	Expect(data["id"]).ToNot(BeZero())
}

func (s *SessionHandlerSuite) TestSignUpInvalidEmail() {
	rr := s.do("POST", "/users", `{"username": "not-an-email", "password": "Longenough1!"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(parseBody(rr)["message"]).ToNot(BeEmpty())
}

func (s *SessionHandlerSuite) TestSignUpWeakPassword() {
	rr := s.do("POST", "/users", `{"username": "eu@test.com", "password": "short1!"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(parseBody(rr)["message"]).To(Equal("Password needs to be at least 8 characters long."))
}

func (s *SessionHandlerSuite) TestLoginSuccess() {
	s.signUp()

	rr := s.do("POST", "/login", `{"username": "eu@test.com", "password": "Longenough1!"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(parseBody(rr)["token"]).ToNot(BeEmpty())
}

func (s *SessionHandlerSuite) TestLoginWrongPassword() {
	s.signUp()

	rr := s.do("POST", "/login", `{"username": "eu@test.com", "password": "Wrongpass1!"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(parseBody(rr)["message"]).To(Equal("Wrong credentials."))
}

func (s *SessionHandlerSuite) TestLoginUnknownUser() {
	rr := s.do("POST", "/login", `{"username": "nobody@test.com", "password": "Longenough1!"}`)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
	Expect(parseBody(rr)["message"]).To(Equal("Username not found."))
}

func (s *SessionHandlerSuite) TestLoginMissingDetails() {
	rr := s.do("POST", "/login", `{"username": "eu@test.com"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(parseBody(rr)["message"]).To(Equal("Please enter all login details."))
}

func (s *SessionHandlerSuite) TestLogoutInvalidatesToken() {
	data := s.signUp()
	token := data["token"].(string)

	rr := s.do("POST", "/logout", "", [2]string{"Authorization", "Bearer " + token})
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Body.Len()).To(BeZero())

	// The credential still verifies cryptographically but no longer names a
	// live session.
	rr = s.do("POST", "/logout", "", [2]string{"Authorization", "Bearer " + token})
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(parseBody(rr)["message"]).To(Equal("Action not allowed."))
}

func (s *SessionHandlerSuite) TestLogoutWithoutHeader() {
	rr := s.do("POST", "/logout", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	Expect(parseBody(rr)["message"]).To(Equal("Missing authorization header."))
}

func (s *SessionHandlerSuite) TestGetAllUsers() {
	s.signUp()

	rr := s.do("GET", "/users", "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	var list []map[string]any
	json.Unmarshal(rr.Body.Bytes(), &list)

	Expect(list).To(HaveLen(1))
	Expect(list[0]["username"]).To(Equal("eu@test.com"))
}
