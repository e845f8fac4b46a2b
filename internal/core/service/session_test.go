package service

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"
	"taskapp/pkg/test"
)

type SessionServiceSuite struct {
	suite.Suite
	repo port.UserRepository
	jwt  *auth.JWT
	svc  *SessionService
}

func (s *SessionServiceSuite) SetupTest() {
	db := test.InitTestDB(s.T())

	s.repo = repository.NewUserRepository(db)
	s.jwt = auth.NewJWT("test-secret", 30*time.Second)
	s.svc = NewSessionService(s.repo, s.jwt)
}

func TestSessionServiceSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(SessionServiceSuite))
}

func (s *SessionServiceSuite) TestSignUpIssuesSession() {
	user, err := s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")

	Expect(err).ToNot(HaveOccurred())
	Expect(user.ID).ToNot(BeZero())
	Expect(user.Token).ToNot(BeNil())

	userID, err := s.jwt.VerifyToken(*user.Token)
	Expect(err).ToNot(HaveOccurred())
	Expect(userID).To(Equal(user.ID))

	stored, err := s.repo.GetByID(context.Background(), user.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(stored.Token).ToNot(BeNil())
	Expect(*stored.Token).To(Equal(*user.Token))
	Expect(stored.PasswordHash).ToNot(Equal("Longenough1!"))
}

func (s *SessionServiceSuite) TestSignUpRejectsWeakPassword() {
	_, err := s.svc.SignUp(context.Background(), "eu@test.com", "short1!")

	var appErr *domain.AppError

	Expect(err).To(HaveOccurred())
	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(400))
	Expect(appErr.Message).To(Equal("Password needs to be at least 8 characters long."))
}

func (s *SessionServiceSuite) TestSignUpDuplicateUsername() {
	_, err := s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(500))
}

func (s *SessionServiceSuite) TestLoginSuccess() {
	signedUp, err := s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")
	Expect(err).ToNot(HaveOccurred())

	user, err := s.svc.Login(context.Background(), "eu@test.com", "Longenough1!")

	Expect(err).ToNot(HaveOccurred())
	Expect(user.ID).To(Equal(signedUp.ID))
	Expect(user.Token).ToNot(BeNil())
}

func (s *SessionServiceSuite) TestLoginReplacesStoredToken() {
	first, err := s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")
	Expect(err).ToNot(HaveOccurred())

	// Force a different iat so the signed payload differs.
	time.Sleep(1100 * time.Millisecond)

	second, err := s.svc.Login(context.Background(), "eu@test.com", "Longenough1!")
	Expect(err).ToNot(HaveOccurred())
	Expect(*second.Token).ToNot(Equal(*first.Token))

	stored, err := s.repo.GetByID(context.Background(), first.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(*stored.Token).To(Equal(*second.Token))
}

func (s *SessionServiceSuite) TestLoginMissingDetails() {
	for _, creds := range [][2]string{{"", "Longenough1!"}, {"eu@test.com", ""}, {"", ""}} {
		_, err := s.svc.Login(context.Background(), creds[0], creds[1])

		var appErr *domain.AppError

		Expect(errors.As(err, &appErr)).To(BeTrue())
		Expect(appErr.Status).To(Equal(400))
		Expect(appErr.Message).To(Equal("Please enter all login details."))
	}
}

func (s *SessionServiceSuite) TestLoginUnknownUsername() {
	_, err := s.svc.Login(context.Background(), "nobody@test.com", "Longenough1!")

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(404))
	Expect(appErr.Message).To(Equal("Username not found."))
}

func (s *SessionServiceSuite) TestLoginWrongPassword() {
	_, err := s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")
	Expect(err).ToNot(HaveOccurred())

	_, err = s.svc.Login(context.Background(), "eu@test.com", "Wrongpass1!")

	var appErr *domain.AppError

	Expect(errors.As(err, &appErr)).To(BeTrue())
	Expect(appErr.Status).To(Equal(401))
	Expect(appErr.Message).To(Equal("Wrong credentials."))
}

func (s *SessionServiceSuite) TestLogoutClearsToken() {
	user, err := s.svc.SignUp(context.Background(), "eu@test.com", "Longenough1!")
	Expect(err).ToNot(HaveOccurred())

	Expect(s.svc.Logout(context.Background(), user)).To(Succeed())

	stored, err := s.repo.GetByID(context.Background(), user.ID)
	Expect(err).ToNot(HaveOccurred())
	Expect(stored.Token).To(BeNil())
	Expect(stored.HasSession()).To(BeFalse())
}
