package mathutil

// Bilinear transform constants
const (
	// bilinearNumerator is the 2 in z = (2 + s) / (2 - s), i.e. 2·fs with fs normalized to 1.
	bilinearNumerator = 2.0
)
