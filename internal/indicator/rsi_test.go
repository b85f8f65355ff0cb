package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
	rsi *RSI
}

func (suite *RSITestSuite) SetupTest() {
	suite.rsi = NewRSI()
}

func TestRSITestSuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestConfig() {
	suite.Require().NoError(suite.rsi.Config(9))
	suite.Equal(9, suite.rsi.period)

	suite.Error(suite.rsi.Config())
	suite.Error(suite.rsi.Config("9"))
	suite.Error(suite.rsi.Config(-1))
}

func (suite *RSITestSuite) TestMonotonicUptrendIsHundred() {
	suite.Require().NoError(suite.rsi.Config(4))

	series := seriesFromCloses([]float64{10, 11, 12, 13, 14, 15, 16, 17})
	values := suite.rsi.Values(series)

	for i := 0; i <= 4; i++ {
		if i < 4 {
			suite.True(math.IsNaN(values[i]))
		}
	}

	for i := 4; i < len(values); i++ {
		suite.InDelta(100.0, values[i], 1e-9)
	}
}

func (suite *RSITestSuite) TestMonotonicDowntrendIsZero() {
	suite.Require().NoError(suite.rsi.Config(4))

	series := seriesFromCloses([]float64{17, 16, 15, 14, 13, 12, 11, 10})
	values := suite.rsi.Values(series)

	for i := 4; i < len(values); i++ {
		suite.InDelta(0.0, values[i], 1e-9)
	}
}

func (suite *RSITestSuite) TestValuesStayInRange() {
	suite.Require().NoError(suite.rsi.Config(5))

	closes := []float64{100, 102, 99, 104, 97, 105, 101, 108, 95, 110, 103, 99}
	values := suite.rsi.Values(seriesFromCloses(closes))

	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}

		suite.GreaterOrEqual(v, 0.0, "index %d", i)
		suite.LessOrEqual(v, 100.0, "index %d", i)
	}
}

func (suite *RSITestSuite) TestBalancedSeedIsFifty() {
	suite.Require().NoError(suite.rsi.Config(4))

	// The seed window has equal gains and losses, so the first defined
	// value sits exactly at the midpoint.
	series := seriesFromCloses([]float64{100, 101, 100, 101, 100})
	values := suite.rsi.Values(series)

	suite.InDelta(50.0, values[4], 1e-9)
}

func (suite *RSITestSuite) TestInsufficientHistoryIsAllNaN() {
	series := seriesFromCloses([]float64{10, 11, 12})
	values := suite.rsi.Values(series)

	suite.Equal(len(values), countNaN(values))
}
