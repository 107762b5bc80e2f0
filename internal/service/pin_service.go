package service

import (
	"fmt"
	"log"
	"time"

	"stickermissions/internal/credentials"
	"stickermissions/internal/dateutil"
	"stickermissions/internal/store"
)

// PINService is the stored parent PIN. It satisfies pinpad.Secret.
type PINService struct {
	store       *store.Store
	clock       dateutil.Clock
	grantSecret []byte
	grantTTL    time.Duration
}

// NewPINService creates a new PIN service. An empty grantSecret disables parent grants.
func NewPINService(st *store.Store, clock dateutil.Clock, grantSecret string, grantTTL time.Duration) *PINService {
	return &PINService{
		store:       st,
		clock:       clock,
		grantSecret: []byte(grantSecret),
		grantTTL:    grantTTL,
	}
}

// Verify reports whether pin matches the stored PIN (or the factory PIN if none is stored)
func (s *PINService) Verify(pin string) bool {
	return credentials.CheckPIN(pin, s.store.State().PINHash)
}

// Replace stores pin as the new parent PIN
func (s *PINService) Replace(pin string) error {
	hash, err := credentials.HashPIN(pin)
	if err != nil {
		return fmt.Errorf("failed to replace pin: %w", err)
	}
	s.store.State().PINHash = hash
	s.store.Commit(store.KeyPIN)
	log.Println("Parent PIN changed")
	return nil
}

// IssueParentGrant returns a token that stands in for a parent unlock until it expires
func (s *PINService) IssueParentGrant() (string, error) {
	return credentials.IssueParentGrant(s.grantSecret, s.store.State().PINHash, s.grantTTL, s.clock.Now())
}

// VerifyParentGrant checks a token from IssueParentGrant
func (s *PINService) VerifyParentGrant(token string) error {
	return credentials.VerifyParentGrant(s.grantSecret, token, s.store.State().PINHash, s.clock.Now())
}
