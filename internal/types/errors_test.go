package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewGameError() {
	err := NewGameError(ErrInvalidAction, "split needs a pair")

	s.Equal(ErrInvalidAction, err.Code)
	s.Equal("split needs a pair", err.Message)
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	underlying := errors.New("need 1 cards, 0 left")

	err := WrapError(ErrDeckExhausted, "dealing", underlying)

	s.Equal(ErrDeckExhausted, err.Code)
	s.Equal("dealing", err.Message)
	s.Equal(underlying, err.Err)
	s.ErrorIs(err, underlying, "Unwrap should expose the cause")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *GameError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewGameError(ErrInsufficientFunds, "bank is 10"),
			expected: "INSUFFICIENT_FUNDS: bank is 10",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrDatabaseError, "saving wallet", errors.New("disk full")),
			expected: "DATABASE_ERROR: saving wallet (disk full)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error())
		})
	}
}

func (s *ErrorTestSuite) TestIsGameError() {
	gameErr := NewGameError(ErrInsufficientFunds, "bank is 10")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "Matching game error",
			err:      gameErr,
			code:     ErrInsufficientFunds,
			expected: true,
		},
		{
			name:     "Wrapped game error",
			err:      fmt.Errorf("doubling: %w", gameErr),
			code:     ErrInsufficientFunds,
			expected: true,
		},
		{
			name:     "Non-matching game error",
			err:      gameErr,
			code:     ErrDeckExhausted,
			expected: false,
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			code:     ErrInsufficientFunds,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			code:     ErrInsufficientFunds,
			expected: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, IsGameError(tc.err, tc.code))
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	gameErr := NewGameError(ErrInvalidAction, "no")

	var target *GameError
	s.True(As(fmt.Errorf("wrapped: %w", gameErr), &target))
	s.Equal(gameErr, target)

	s.False(As(errors.New("plain"), &target))
	s.False(As(nil, &target))
	s.False(As(gameErr, nil))
}

func (s *ErrorTestSuite) TestIsRecoverable() {
	s.True(IsRecoverable(NewGameError(ErrInsufficientFunds, "")))
	s.True(IsRecoverable(NewGameError(ErrInvalidAction, "")))
	s.True(IsRecoverable(NewGameError(ErrInvalidBet, "")))
	s.False(IsRecoverable(NewGameError(ErrDeckExhausted, "")))
	s.False(IsRecoverable(errors.New("plain")))
}
