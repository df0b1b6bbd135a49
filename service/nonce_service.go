package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/web3_voting/model"
	"github.com/web3_voting/repository"
	"gorm.io/gorm"
)

var (
	// ErrAddressRequired is returned when a nonce is requested without an address.
	ErrAddressRequired = errors.New("address required")
	// ErrInvalidOrUsedNonce covers nonces that were never issued, were already
	// consumed, or were invalidated by a later issuance.
	ErrInvalidOrUsedNonce = errors.New("invalid or used nonce")
)

const nonceBytes = 16 // 128 bits of entropy

type NonceService struct {
	nonces *repository.NonceRepository
}

func NewNonceService(nonces *repository.NonceRepository) *NonceService {
	return &NonceService{nonces: nonces}
}

// Issue invalidates any outstanding nonce for the address and returns a fresh
// one. The address is normalized to lowercase before storage.
func (s *NonceService) Issue(address string) (*model.Nonce, error) {
	if address == "" {
		return nil, ErrAddressRequired
	}
	value, err := generateNonce()
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.nonces.Replace(strings.ToLower(address), value)
}

// ValidateAndPeek looks up the unused nonce for the address without consuming
// it, so the caller can verify the signature before committing side effects.
func (s *NonceService) ValidateAndPeek(address, value string) (*model.Nonce, error) {
	nonce, err := s.nonces.FindUnused(strings.ToLower(address), value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrUsedNonce
		}
		return nil, err
	}
	return nonce, nil
}

// Consume marks the nonce used.
func (s *NonceService) Consume(id uint64) error {
	return s.nonces.MarkUsed(id)
}

func generateNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
