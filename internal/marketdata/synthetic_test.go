package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/crestline-lab/tidal-trading/internal/types"
)

type SyntheticTestSuite struct {
	suite.Suite
	provider *SyntheticProvider
}

func (suite *SyntheticTestSuite) SetupTest() {
	suite.provider = NewSyntheticProvider()
	suite.provider.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func TestSyntheticTestSuite(t *testing.T) {
	suite.Run(t, new(SyntheticTestSuite))
}

func (suite *SyntheticTestSuite) TestExactLimitAndValid() {
	series, err := suite.provider.FetchBars(context.Background(), "BTC/USD", types.Timeframe1h, 50)
	suite.Require().NoError(err)

	suite.Equal(50, series.Len())
	suite.Equal(types.OriginSynthetic, series.Origin)
	suite.NoError(series.Validate())
}

func (suite *SyntheticTestSuite) TestDeterministicPerSymbol() {
	first, err := suite.provider.FetchBars(context.Background(), "ETH/USD", types.Timeframe1d, 30)
	suite.Require().NoError(err)

	second, err := suite.provider.FetchBars(context.Background(), "ETH/USD", types.Timeframe1d, 30)
	suite.Require().NoError(err)

	suite.Equal(first.Closes(), second.Closes())
}

func (suite *SyntheticTestSuite) TestDifferentSymbolsDiverge() {
	btc, err := suite.provider.FetchBars(context.Background(), "BTC/USD", types.Timeframe1d, 30)
	suite.Require().NoError(err)

	sol, err := suite.provider.FetchBars(context.Background(), "SOL/USD", types.Timeframe1d, 30)
	suite.Require().NoError(err)

	suite.NotEqual(btc.Closes(), sol.Closes())
}

func (suite *SyntheticTestSuite) TestBasePriceBySymbolFamily() {
	ctx := context.Background()

	btc, err := suite.provider.FetchBars(ctx, "BTC/USD", types.Timeframe1d, 10)
	suite.Require().NoError(err)

	eth, err := suite.provider.FetchBars(ctx, "ETH/USD", types.Timeframe1d, 10)
	suite.Require().NoError(err)

	alt, err := suite.provider.FetchBars(ctx, "DOGE/USD", types.Timeframe1d, 10)
	suite.Require().NoError(err)

	// The bounded walk keeps prices within a factor of the anchor.
	suite.Greater(btc.Bars[0].Open, 10000.0)
	suite.InDelta(syntheticBaseETH, eth.Bars[0].Open, syntheticBaseETH*0.5)
	suite.Less(alt.Bars[0].Open, 1000.0)
}

func (suite *SyntheticTestSuite) TestTimestampsFollowTimeframe() {
	series, err := suite.provider.FetchBars(context.Background(), "BTC/USD", types.Timeframe5m, 12)
	suite.Require().NoError(err)

	for i := 1; i < series.Len(); i++ {
		suite.Equal(5*time.Minute, series.Bars[i].Time.Sub(series.Bars[i-1].Time))
	}

	last, ok := series.Last()
	suite.Require().True(ok)
	suite.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), last.Time)
}
