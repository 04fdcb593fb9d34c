// Package fitness provides closed-form derived-metric calculators. Their
// outputs feed the normalizer as raw metric values; no normalization happens
// here.
package fitness

import "fmt"

// Heart-rate ratio coefficients (Uth et al., 2004), adjusted per sex.
const (
	hrRatioCoefficientMale   = 15.3
	hrRatioCoefficientFemale = 14.7
)

// Cooper test regression constants (Cooper, 1968).
const (
	cooperDistanceOffset = 504.9
	cooperDistanceSlope  = 44.73
)

// EstimateVO2MaxHR estimates aerobic capacity (ml/kg/min) from resting and
// maximal heart rate using the HRmax/HRrest ratio method. Sex selects the
// coefficient set; anything other than "female" uses the male coefficient.
func EstimateVO2MaxHR(sex string, restingHR, maxHR float64) (float64, error) {
	if restingHR <= 0 || maxHR <= 0 {
		return 0, fmt.Errorf("%w: heart rates must be positive", ErrInvalidInput)
	}
	if maxHR <= restingHR {
		return 0, fmt.Errorf("%w: max heart rate must exceed resting", ErrInvalidInput)
	}
	coefficient := hrRatioCoefficientMale
	if sex == "female" {
		coefficient = hrRatioCoefficientFemale
	}
	return coefficient * (maxHR / restingHR), nil
}

// EstimateVO2MaxCooper estimates aerobic capacity (ml/kg/min) from the
// distance covered in a 12-minute run: (d - 504.9) / 44.73.
func EstimateVO2MaxCooper(distanceMeters float64) (float64, error) {
	if distanceMeters <= cooperDistanceOffset {
		return 0, fmt.Errorf("%w: distance too short for the Cooper regression", ErrInvalidInput)
	}
	return (distanceMeters - cooperDistanceOffset) / cooperDistanceSlope, nil
}
