package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "wizard not found",
			expected: "NOT_FOUND: wizard not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "damage must not be negative",
			expected: "INVALID_ARGUMENT: damage must not be negative",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("wizard not found").
		WithMeta("wizard_id", "wiz_1").
		WithMeta("role", "caster")

	s.Equal("wiz_1", err.Meta["wizard_id"])
	s.Equal("caster", err.Meta["role"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to get wizard")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to get wizard", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
	s.Equal("INTERNAL: failed to get wizard: connection refused", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.InvalidArgument("percentage must be between 0 and 100")
	wrapped := errors.Wrapf(baseErr, "failed to cast %s", "Confringo")

	s.Equal(errors.CodeInvalidArgument, wrapped.Code)
	s.Equal("failed to cast Confringo", wrapped.Message)
	s.True(errors.IsInvalidArgument(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("missing").WithMeta("id", "x")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeFailedPrecondition, "stale index")

	s.Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Equal("x", wrapped.Meta["id"])
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Equal(tc.code, err.Code)
			s.Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.InvalidArgument("a")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
	s.True(errors.Is(errors.Wrap(err1, "outer"), err2))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.AlreadyExistsf("wizard %s already exists", "wiz_1")
	wrapped := errors.Wrap(err, "create failed")

	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Equal("user friendly message", errors.GetMessage(err))
	s.Equal("wrapped message", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
	s.Equal("", errors.GetMessage(nil))
}
