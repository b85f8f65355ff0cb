package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PositionSizerTestSuite struct {
	suite.Suite
	sizer *PositionSizer
}

func (suite *PositionSizerTestSuite) SetupTest() {
	suite.sizer = NewPositionSizer()
}

func TestPositionSizerTestSuite(t *testing.T) {
	suite.Run(t, new(PositionSizerTestSuite))
}

func (suite *PositionSizerTestSuite) TestRiskBasedQuantity() {
	// 1% of 10000 = 100 risked over a 5-point stop distance: 20 units.
	quantity := suite.sizer.Size(10000, 1.0, 100, 95)
	suite.InDelta(20.0, quantity, 1e-9)
}

func (suite *PositionSizerTestSuite) TestStopAboveEntryUsesAbsoluteDistance() {
	quantity := suite.sizer.Size(10000, 1.0, 95, 100)
	suite.InDelta(20.0, quantity, 1e-9)
}

func (suite *PositionSizerTestSuite) TestZeroStopDistanceReturnsZero() {
	quantity := suite.sizer.Size(10000, 1.0, 100, 100)
	suite.Zero(quantity)
}

func (suite *PositionSizerTestSuite) TestTighterStopMeansLargerSize() {
	wide := suite.sizer.Size(10000, 1.0, 100, 90)
	tight := suite.sizer.Size(10000, 1.0, 100, 99)
	suite.Greater(tight, wide)
}
