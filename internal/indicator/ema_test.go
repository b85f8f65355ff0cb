package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
	ema *EMA
}

func (suite *EMATestSuite) SetupTest() {
	suite.ema = NewEMA()
}

func TestEMATestSuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestConfig() {
	suite.Require().NoError(suite.ema.Config(10))
	suite.Equal(10, suite.ema.period)

	suite.Error(suite.ema.Config())
	suite.Error(suite.ema.Config("10"))
	suite.Error(suite.ema.Config(0))
	suite.Error(suite.ema.Config(-3))
}

func (suite *EMATestSuite) TestConstantSeriesStaysFlat() {
	suite.Require().NoError(suite.ema.Config(5))

	series := seriesFromCloses([]float64{42, 42, 42, 42, 42, 42, 42, 42})
	values := suite.ema.Values(series)

	suite.Len(values, 8)
	for _, v := range values {
		suite.InDelta(42.0, v, 1e-9)
	}
}

func (suite *EMATestSuite) TestKnownValues() {
	// alpha = 2/(3+1) = 0.5, seeded at the first close.
	suite.Require().NoError(suite.ema.Config(3))

	series := seriesFromCloses([]float64{10, 20, 30})
	values := suite.ema.Values(series)

	suite.InDelta(10.0, values[0], 1e-9)
	suite.InDelta(15.0, values[1], 1e-9)
	suite.InDelta(22.5, values[2], 1e-9)
}

func (suite *EMATestSuite) TestEmptySeries() {
	series := seriesFromCloses(nil)
	suite.Empty(suite.ema.Values(series))
}

func (suite *EMATestSuite) TestCompute() {
	series := seriesFromCloses([]float64{10, 11, 12, 13})

	result, err := suite.ema.Compute(series)
	suite.Require().NoError(err)
	suite.Equal(suite.ema.Name(), result.Type)
	suite.Len(result.Line("ema"), 4)
}
