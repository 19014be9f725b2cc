package naming

import "sync"

// CollisionTracker records which input claimed each output name during a
// run, so later inputs that would overwrite an earlier PDF can be reported.
// All methods are goroutine-safe.
type CollisionTracker struct {
	mu     sync.Mutex
	owners map[string]string // output name → input path that claimed it
}

// NewCollisionTracker creates a ready-to-use tracker.
func NewCollisionTracker() *CollisionTracker {
	return &CollisionTracker{owners: make(map[string]string)}
}

// Claim registers input as the producer of output. When another input
// already claimed output, that input is returned with collided set; the
// new input becomes the owner since its file replaces the earlier one.
func (ct *CollisionTracker) Claim(input, output string) (previous string, collided bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	owner, exists := ct.owners[output]
	ct.owners[output] = input
	if !exists || owner == input {
		return "", false
	}
	return owner, true
}
