package services

import (
	"strings"

	"github.com/cognisync/cognisync-api/internal/constants"
	apierrors "github.com/cognisync/cognisync-api/internal/errors"
	"github.com/cognisync/cognisync-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (suite *ServiceTestSuite) countUsers() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.User{}).Count(&count).Error)
	return count
}

func (suite *ServiceTestSuite) TestRegister_Success() {
	email := " Carol@Example.com "
	user, err := suite.auth.Register(suite.ctx, RegisterInput{
		Username:  "carol.w",
		Password:  "s3cret-pass",
		Role:      "Manager",
		Email:     &email,
		FirstName: "Carol",
	})
	suite.Require().NoError(err)

	suite.NotZero(user.ID)
	suite.Equal(models.RoleManager, user.Role)
	suite.Equal("carol@example.com", *user.Email)
	suite.NotEqual("s3cret-pass", user.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	suite.Require().NoError(err)
	suite.Equal(10, cost)
}

func (suite *ServiceTestSuite) TestAuthenticate_EmailAsRegistered() {
	email := "Carol@Example.com"
	registered, err := suite.auth.Register(suite.ctx, RegisterInput{
		Username: "carol",
		Password: "s3cret-pass",
		Role:     "employee",
		Email:    &email,
	})
	suite.Require().NoError(err)

	for _, identity := range []string{"Carol@Example.com", "carol@example.com", " CAROL@EXAMPLE.COM "} {
		user, token, err := suite.auth.Authenticate(suite.ctx, identity, "s3cret-pass")
		suite.Require().NoError(err, identity)
		suite.Equal(registered.ID, user.ID, identity)
		suite.NotEmpty(token, identity)
	}

	_, _, err = suite.auth.Authenticate(suite.ctx, "Carol@Example.com", "wrong-pass")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *ServiceTestSuite) TestRegister_InvalidRolePersistsNothing() {
	before := suite.countUsers()

	for _, role := range []string{"", "root", "superuser", "owner"} {
		_, err := suite.auth.Register(suite.ctx, RegisterInput{
			Username: "dave",
			Password: "password",
			Role:     role,
		})
		suite.requireKind(err, apierrors.KindValidation)
	}

	suite.Equal(before, suite.countUsers())
}

func (suite *ServiceTestSuite) TestRegister_InvalidUsername() {
	for _, username := range []string{"ab", "has space", "dash-name", "this_username_is_far_too_long_for_us"} {
		_, err := suite.auth.Register(suite.ctx, RegisterInput{
			Username: username,
			Password: "password",
			Role:     "user",
		})
		suite.ErrorIs(err, ErrInvalidUsername, username)
	}
}

func (suite *ServiceTestSuite) TestRegister_UsernameLengthBounds() {
	cases := map[string]error{
		strings.Repeat("a", constants.UsernameMinLength-1): ErrInvalidUsername,
		strings.Repeat("b", constants.UsernameMinLength):   nil,
		strings.Repeat("c", constants.UsernameMaxLength):   nil,
		strings.Repeat("d", constants.UsernameMaxLength+1): ErrInvalidUsername,
	}
	for username, want := range cases {
		_, err := suite.auth.Register(suite.ctx, RegisterInput{
			Username: username,
			Password: "password",
			Role:     "user",
		})
		if want == nil {
			suite.NoError(err, username)
		} else {
			suite.ErrorIs(err, want, username)
		}
	}
}

func (suite *ServiceTestSuite) TestRegister_DuplicateIdentity() {
	_, err := suite.auth.Register(suite.ctx, RegisterInput{
		Username: "alice",
		Password: "password",
		Role:     "user",
	})
	suite.requireKind(err, apierrors.KindConflict)

	email := "shared@example.com"
	_, err = suite.auth.Register(suite.ctx, RegisterInput{Username: "first", Password: "password", Role: "user", Email: &email})
	suite.Require().NoError(err)
	_, err = suite.auth.Register(suite.ctx, RegisterInput{Username: "second", Password: "password", Role: "user", Email: &email})
	suite.requireKind(err, apierrors.KindConflict)
}

func (suite *ServiceTestSuite) TestRegister_PasswordTooLong() {
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := suite.auth.Register(suite.ctx, RegisterInput{Username: "longpw", Password: string(long), Role: "user"})
	suite.ErrorIs(err, ErrPasswordTooLong)
}

func (suite *ServiceTestSuite) TestAuthenticate() {
	email := "erin@example.com"
	registered, err := suite.auth.Register(suite.ctx, RegisterInput{
		Username: "erin",
		Password: "correct horse",
		Role:     "employee",
		Email:    &email,
	})
	suite.Require().NoError(err)

	suite.Run("by username", func() {
		user, token, err := suite.auth.Authenticate(suite.ctx, "erin", "correct horse")
		suite.Require().NoError(err)
		suite.Equal(registered.ID, user.ID)

		claims, err := suite.tokens.Verify(suite.ctx, token)
		suite.Require().NoError(err)
		suite.Equal(registered.ID, claims.UserID)
		suite.Equal(models.RoleEmployee, claims.Role)
		suite.Equal("erin", claims.Username)
	})

	suite.Run("by email", func() {
		user, _, err := suite.auth.Authenticate(suite.ctx, email, "correct horse")
		suite.Require().NoError(err)
		suite.Equal(registered.ID, user.ID)
	})

	suite.Run("failures are indistinguishable", func() {
		_, _, wrongPassword := suite.auth.Authenticate(suite.ctx, "erin", "battery staple")
		_, _, unknownUser := suite.auth.Authenticate(suite.ctx, "nobody", "battery staple")

		suite.requireKind(wrongPassword, apierrors.KindAuth)
		suite.Equal(wrongPassword, unknownUser)
		suite.Equal(wrongPassword.Error(), unknownUser.Error())
	})
}

func (suite *ServiceTestSuite) TestLogout_WithoutDenylist() {
	revoked, err := suite.auth.Logout(suite.ctx, claimsFor(suite.alice))
	suite.NoError(err)
	suite.False(revoked)
}
