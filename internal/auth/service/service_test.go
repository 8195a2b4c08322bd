package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	attendance "fieldtrack/internal/attendance/models"
	"fieldtrack/internal/auth/models"
	"fieldtrack/internal/auth/service/mocks"
	dErrors "fieldtrack/pkg/domain-errors"
	"fieldtrack/pkg/platform/sentinel"
	"fieldtrack/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	accounts *mocks.MockAccountStore
	tokens   *mocks.MockTokenIssuer
	service  *Service
	ctx      context.Context
	now      time.Time
	account  models.Account
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupSuite() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.Require().NoError(err)
	managerID := int64(1)
	s.account = models.Account{
		Employee: attendance.Employee{
			ID:        2,
			Name:      "Rahul Kumar",
			Email:     "rahul@unolo.com",
			Role:      attendance.RoleEmployee,
			ManagerID: &managerID,
		},
		PasswordHash: string(hash),
	}
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accounts = mocks.NewMockAccountStore(s.ctrl)
	s.tokens = mocks.NewMockTokenIssuer(s.ctrl)
	s.service = New(s.accounts, s.tokens, WithTokenTTL(2*time.Hour))
	s.now = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) TestLogin() {
	s.Run("valid credentials issue a token", func() {
		s.accounts.EXPECT().FindByEmail(gomock.Any(), "rahul@unolo.com").Return(&s.account, nil)
		s.tokens.EXPECT().GenerateAccessToken(s.account.Employee, s.now, 2*time.Hour).Return("signed", nil)

		result, err := s.service.Login(s.ctx, "  Rahul@Unolo.com ", "password123")
		s.Require().NoError(err)
		s.Equal("signed", result.Token)
		s.Equal(int64(7200), result.ExpiresIn)
		s.Equal(s.account.Employee, result.User)
	})

	s.Run("missing fields", func() {
		_, err := s.service.Login(s.ctx, "", "password123")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.service.Login(s.ctx, "rahul@unolo.com", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown email", func() {
		s.accounts.EXPECT().FindByEmail(gomock.Any(), "nobody@unolo.com").Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Login(s.ctx, "nobody@unolo.com", "password123")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("invalid credentials", err.Error())
	})

	s.Run("wrong password", func() {
		s.accounts.EXPECT().FindByEmail(gomock.Any(), "rahul@unolo.com").Return(&s.account, nil)

		_, err := s.service.Login(s.ctx, "rahul@unolo.com", "wrong")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Equal("invalid credentials", err.Error())
	})

	s.Run("store failure", func() {
		s.accounts.EXPECT().FindByEmail(gomock.Any(), "rahul@unolo.com").Return(nil, errors.New("connection refused"))

		_, err := s.service.Login(s.ctx, "rahul@unolo.com", "password123")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("signing failure", func() {
		s.accounts.EXPECT().FindByEmail(gomock.Any(), "rahul@unolo.com").Return(&s.account, nil)
		s.tokens.EXPECT().GenerateAccessToken(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("bad key"))

		_, err := s.service.Login(s.ctx, "rahul@unolo.com", "password123")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestMe() {
	s.Run("returns the profile", func() {
		s.accounts.EXPECT().FindByID(gomock.Any(), int64(2)).Return(&s.account, nil)

		employee, err := s.service.Me(s.ctx, 2)
		s.Require().NoError(err)
		s.Equal("Rahul Kumar", employee.Name)
	})

	s.Run("unknown employee", func() {
		s.accounts.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Me(s.ctx, 99)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store failure", func() {
		s.accounts.EXPECT().FindByID(gomock.Any(), int64(2)).Return(nil, errors.New("timeout"))

		_, err := s.service.Me(s.ctx, 2)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestDefaultTTL() {
	svc := New(s.accounts, s.tokens, WithTokenTTL(0))
	s.Equal(DefaultTokenTTL, svc.tokenTTL)
}
