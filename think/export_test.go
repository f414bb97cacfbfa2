package think

// PendingLen exposes the held-back suffix length for boundary tests.
func PendingLen(c *Classifier) int { return len(c.pending) }

// MaxPending mirrors the internal pending-buffer bound.
const MaxPending = maxPending
