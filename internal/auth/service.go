package auth

import (
	"crypto/subtle"
	"fmt"
	"log"
	"time"
)

// Credentials is the slice of the credential store the login flow needs.
type Credentials interface {
	Passwords() ([]string, error)
}

// Notifier delivers an out-of-band message on the fixed admin channel.
// Implementations are fire-and-forget; Dispatch must not block.
type Notifier interface {
	Dispatch(subject, body string)
}

// Service orchestrates the login flow: password check against the
// credential set, allowlist bypass, and one-time-code issue/verify via
// the code table. Unknown devices get a time-boxed code delivered
// out-of-band; devices with a trusted identifier prefix skip the second
// factor entirely.
type Service struct {
	creds     Credentials
	codes     *CodeTable
	allowlist Allowlist
	notifier  Notifier
	now       func() time.Time
}

// NewService wires the login flow together. The code table is owned by
// the caller so tests can construct the whole flow per instance.
func NewService(creds Credentials, codes *CodeTable, allowlist Allowlist, notifier Notifier) *Service {
	return &Service{
		creds:     creds,
		codes:     codes,
		allowlist: allowlist,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Login validates the password against the credential set. It reports
// whether a second factor is required: false for allowlisted devices,
// true otherwise, in which case a fresh code has been issued and
// dispatched to the admin channel. Notification failures never fail the
// login. Returns ErrInvalidPassword when the password is unknown.
func (s *Service) Login(password, deviceID string) (require2FA bool, err error) {
	passwords, err := s.creds.Passwords()
	if err != nil {
		return false, fmt.Errorf("checking password: %w", err)
	}

	ok := false
	for _, p := range passwords {
		if subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1 {
			ok = true
		}
	}
	if !ok {
		return false, ErrInvalidPassword
	}

	if s.allowlist.Allowed(deviceID) {
		return false, nil
	}

	code, err := s.codes.Issue(deviceID, s.now())
	if err != nil {
		return false, fmt.Errorf("issuing code: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Dispatch(
			"Druck login verification",
			fmt.Sprintf("Login code for device %s: %s (valid for one hour)", deviceID, code),
		)
	} else {
		log.Printf("auth: no notifier configured; code for device %s not delivered", deviceID)
	}
	return true, nil
}

// Verify checks the code pending for the device, consuming it on
// success. Outcomes map directly onto the code table errors.
func (s *Service) Verify(deviceID, code string) error {
	return s.codes.Verify(deviceID, code, s.now())
}
