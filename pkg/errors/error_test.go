package errors

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

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeMarketDataEmpty, "no bars returned for %s", "BTC/USD")
	suite.NotNil(err)
	suite.Equal(ErrCodeMarketDataEmpty, err.Code)
	suite.Equal("no bars returned for BTC/USD", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeMarketDataFetchFailed, "fetch failed", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeMarketDataFetchFailed, err.Code)
	suite.Equal("fetch failed", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("connection refused")
	err := Wrapf(ErrCodeMarketDataFetchFailed, cause, "fetch failed for symbol: %s", "ETH/USD")
	suite.NotNil(err)
	suite.Equal(ErrCodeMarketDataFetchFailed, err.Code)
	suite.Equal("fetch failed for symbol: ETH/USD", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeMarketDataFetchFailed, "fetch failed", cause)
	suite.Equal("[200] fetch failed: connection refused", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeMarketDataFetchFailed, "fetch failed", cause)
	suite.Equal(cause, err.Unwrap())
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeOrderRejected, "order rejected")
	suite.Equal(ErrCodeOrderRejected, GetCode(err))
	suite.True(HasCode(err, ErrCodeOrderRejected))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeMarketDataEmpty, "no bars")
	err := Wrap(ErrCodeIndicatorCalculation, "calculation failed", cause)
	// GetCode returns the outermost error's code
	suite.Equal(ErrCodeIndicatorCalculation, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeThroughFmtWrap() {
	inner := New(ErrCodeDailyLossBreached, "daily loss limit breached")
	wrapped := fmt.Errorf("cycle aborted: %w", inner)
	suite.Equal(ErrCodeDailyLossBreached, GetCode(wrapped))
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(26, 10, "BTC/USD", "need 26 bars, have 10")
	suite.Equal("need 26 bars, have 10", err.Error())
	suite.True(IsInsufficientDataError(err))

	wrapped := fmt.Errorf("signal: %w", err)
	suite.True(IsInsufficientDataError(wrapped))

	suite.False(IsInsufficientDataError(errors.New("other")))
}
