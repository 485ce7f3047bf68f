package game

import "fmt"

// SecretCode is a write-once cell holding the secret combination.
type SecretCode struct {
	code Combination
	set  bool
}

// Set stores c. It fails if a secret was already stored or c is empty.
func (s *SecretCode) Set(c Combination) error {
	if s.set {
		return ErrSecretAlreadySet
	}
	if c.IsZero() {
		return fmt.Errorf("%w: secret code is empty", ErrRange)
	}
	s.code, s.set = c, true
	return nil
}

// Get returns the secret and whether it is known.
func (s *SecretCode) Get() (Combination, bool) { return s.code, s.set }

// Fuse is a boolean that can only go from false to true.
type Fuse struct{ blown bool }

// Blow sets the fuse. Blowing it again is a no-op.
func (f *Fuse) Blow() { f.blown = true }

// Blown reports whether Blow was called.
func (f *Fuse) Blown() bool { return f.blown }
