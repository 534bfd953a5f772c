package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReserveData(t *testing.T) {
	r := NewReserveData(42)

	assert.Equal(t, ScalarExchange, r.BRate.Int64())
	assert.Equal(t, ScalarExchange, r.DRate.Int64())
	assert.Equal(t, ScalarRate, r.IRMod)
	assert.True(t, r.BSupply.IsZero())
	assert.True(t, r.DSupply.IsZero())
	assert.True(t, r.BackstopCredit.IsZero())
	assert.Equal(t, int64(42), r.LastTime)
}

func TestRateParamsValidate(t *testing.T) {
	require.NoError(t, DefaultRateParams().Validate())

	p := DefaultRateParams()
	p.MaxUtil = ScalarRate + 1
	assert.ErrorIs(t, p.Validate(), ErrInvalidRateParams)

	p = DefaultRateParams()
	p.MaxUtil = p.TargetUtil
	assert.ErrorIs(t, p.Validate(), ErrInvalidRateParams)

	p = DefaultRateParams()
	p.ROne = -1
	assert.ErrorIs(t, p.Validate(), ErrInvalidRateParams)
}
