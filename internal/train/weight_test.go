package train

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcWeightQuantizedToOneDecimal(t *testing.T) {
	w := CalcWeight(1000000)
	require.InDelta(t, w*10, float64(int(w*10+0.5)), 1e-9, "weight must land on a one-decimal value")
	require.GreaterOrEqual(t, w, 0.0)
	require.LessOrEqual(t, w, 1.1)
}

func TestCalcWeightIncreasesWithSampleSize(t *testing.T) {
	small := CalcWeight(10)
	large := CalcWeight(1000000)
	require.Less(t, small, large)
}
