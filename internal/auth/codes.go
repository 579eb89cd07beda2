package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const (
	codeMin = 100000
	codeMax = 999999
)

type pendingCode struct {
	code      string
	expiresAt time.Time
}

// CodeTable keeps pending one-time verification codes keyed by device
// identifier, one record per device, for the lifetime of the process.
// Nothing is persisted: a restart silently invalidates all pending
// verifications. Expired records are reaped lazily on verification, not
// by a background sweep.
type CodeTable struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]pendingCode
}

// NewCodeTable creates an empty table whose codes are valid for ttl.
func NewCodeTable(ttl time.Duration) *CodeTable {
	return &CodeTable{
		ttl:   ttl,
		codes: make(map[string]pendingCode),
	}
}

// Issue draws a uniform six-digit code, stores it for deviceID with
// expiry now + ttl and returns it. A previously pending code for the
// same device is overwritten.
func (t *CodeTable) Issue(deviceID string, now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("drawing code: %w", err)
	}
	code := fmt.Sprintf("%06d", codeMin+n.Int64())

	t.mu.Lock()
	defer t.mu.Unlock()
	t.codes[deviceID] = pendingCode{code: code, expiresAt: now.Add(t.ttl)}
	return code, nil
}

// Verify checks the code pending for deviceID. A correct match consumes
// the record, so a replay of the same code fails with ErrNoPendingCode.
// An expired record is deleted and reported as ErrCodeExpired regardless
// of code correctness; a mismatch keeps the record so the caller may
// retry.
func (t *CodeTable) Verify(deviceID, code string, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending, ok := t.codes[deviceID]
	if !ok {
		return ErrNoPendingCode
	}
	if now.After(pending.expiresAt) {
		delete(t.codes, deviceID)
		return ErrCodeExpired
	}
	if pending.code != code {
		return ErrCodeMismatch
	}
	delete(t.codes, deviceID)
	return nil
}

// Pending reports whether a record exists for deviceID, expired or not.
func (t *CodeTable) Pending(deviceID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.codes[deviceID]
	return ok
}
