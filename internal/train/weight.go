package train

import "math"

// CalcWeight computes the interpolation weight between the long and short
// probability tables, w = round(10 * (sigmoid(2*log10(N) - 10) + 0.05)) / 10
// where N is the count of in-window training observations. The weight is
// deliberately quantized to one decimal.
func CalcWeight(usefulSetSize int) float64 {
	sigmoid := 1.0 / (1.0 + math.Exp(10-2*math.Log10(float64(usefulSetSize))))
	return math.Round(10*(sigmoid+0.05)) / 10
}
