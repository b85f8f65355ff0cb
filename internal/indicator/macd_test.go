package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type MACDTestSuite struct {
	suite.Suite
	macd *MACD
}

func (suite *MACDTestSuite) SetupTest() {
	suite.macd = NewMACD()
}

func TestMACDTestSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}

func (suite *MACDTestSuite) TestConfig() {
	suite.Require().NoError(suite.macd.Config(5, 10, 3))
	suite.Equal(5, suite.macd.fastPeriod)
	suite.Equal(10, suite.macd.slowPeriod)
	suite.Equal(3, suite.macd.signalPeriod)

	suite.Error(suite.macd.Config(5, 10))
	suite.Error(suite.macd.Config(5, "10", 3))
	suite.Error(suite.macd.Config(5, 10, 0))
	// Fast period must be shorter than the slow period.
	suite.Error(suite.macd.Config(26, 12, 9))
}

func (suite *MACDTestSuite) TestConstantSeriesIsZero() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 500
	}

	macd, signal, histogram := suite.macd.Lines(seriesFromCloses(closes))

	for i := range closes {
		suite.InDelta(0.0, macd[i], 1e-9)
		suite.InDelta(0.0, signal[i], 1e-9)
		suite.InDelta(0.0, histogram[i], 1e-9)
	}
}

func (suite *MACDTestSuite) TestUptrendTurnsMACDPositive() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	macd, _, _ := suite.macd.Lines(seriesFromCloses(closes))

	// In a steady uptrend the fast EMA tracks price more closely than the
	// slow EMA, so the macd line settles above zero.
	suite.Greater(macd[len(macd)-1], 0.0)
}

func (suite *MACDTestSuite) TestHistogramIsMACDMinusSignal() {
	closes := []float64{100, 102, 99, 104, 97, 105, 101, 108, 95, 110, 103, 99, 106, 112, 98}
	macd, signal, histogram := suite.macd.Lines(seriesFromCloses(closes))

	for i := range closes {
		suite.InDelta(macd[i]-signal[i], histogram[i], 1e-9)
	}
}

func (suite *MACDTestSuite) TestEmptySeries() {
	macd, signal, histogram := suite.macd.Lines(seriesFromCloses(nil))
	suite.Nil(macd)
	suite.Nil(signal)
	suite.Nil(histogram)
}

func (suite *MACDTestSuite) TestCompute() {
	series := seriesFromCloses([]float64{10, 11, 12, 13, 14})

	result, err := suite.macd.Compute(series)
	suite.Require().NoError(err)
	suite.Equal(suite.macd.Name(), result.Type)
	suite.Len(result.Line("macd"), 5)
	suite.Len(result.Line("signal"), 5)
	suite.Len(result.Line("histogram"), 5)
}
