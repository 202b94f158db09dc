package engine

// BackoffWeight computes a percentage-offset weight from a parent top-set
// weight. The offset is signed: -0.10 means 10% lighter. This is a one-shot,
// use-time calculation — it never reads or writes the backoff entry's own
// prescription; the caller supplies the top-set weight for the current session.
func BackoffWeight(topSetWeight, offsetPercent float64) float64 {
	return Round2(topSetWeight * (1 + offsetPercent))
}
