package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ATRTestSuite struct {
	suite.Suite
	atr *ATR
}

func (suite *ATRTestSuite) SetupTest() {
	suite.atr = NewATR()
}

func TestATRTestSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}

func (suite *ATRTestSuite) TestConfig() {
	suite.Require().NoError(suite.atr.Config(7))
	suite.Equal(7, suite.atr.period)

	suite.Error(suite.atr.Config())
	suite.Error(suite.atr.Config(3.5))
	suite.Error(suite.atr.Config(0))
}

func (suite *ATRTestSuite) TestRollingMeanOfTrueRange() {
	suite.Require().NoError(suite.atr.Config(3))

	// Flat closes with a constant 2-point bar range: every true range is 2,
	// so the rolling mean is 2 wherever it is defined.
	n := 6
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	close := make([]float64, n)

	for i := 0; i < n; i++ {
		open[i] = 100
		high[i] = 101
		low[i] = 99
		close[i] = 100
	}

	values := suite.atr.Values(seriesFromOHLC(open, high, low, close))

	suite.Len(values, n)
	suite.True(math.IsNaN(values[0]))
	suite.True(math.IsNaN(values[1]))

	for i := 2; i < n; i++ {
		suite.InDelta(2.0, values[i], 1e-9)
	}
}

func (suite *ATRTestSuite) TestGapIncludesPreviousClose() {
	suite.Require().NoError(suite.atr.Config(2))

	// The second bar gaps up: true range is high-prevClose, not high-low.
	open := []float64{100, 110, 110}
	high := []float64{101, 111, 111}
	low := []float64{99, 109, 109}
	close := []float64{100, 110, 110}

	values := suite.atr.Values(seriesFromOHLC(open, high, low, close))

	// TR = [2, 11, 2], rolling mean of 2: [NaN, 6.5, 6.5].
	suite.True(math.IsNaN(values[0]))
	suite.InDelta(6.5, values[1], 1e-9)
	suite.InDelta(6.5, values[2], 1e-9)
}

func (suite *ATRTestSuite) TestInsufficientHistoryIsAllNaN() {
	series := seriesFromCloses([]float64{10, 11, 12})
	values := suite.atr.Values(series)

	suite.Equal(len(values), countNaN(values))
}

func (suite *ATRTestSuite) TestCompute() {
	series := seriesFromCloses([]float64{10, 11, 12})

	result, err := suite.atr.Compute(series)
	suite.Require().NoError(err)
	suite.Equal(suite.atr.Name(), result.Type)
	suite.Len(result.Line("atr"), 3)
}
