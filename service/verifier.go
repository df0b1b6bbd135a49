package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrMalformedSignature means the signature bytes could not be decoded or the
// public key recovery itself failed.
var ErrMalformedSignature = errors.New("malformed signature")

// VoteMessage builds the canonical string the client must sign. Any deviation
// in the signed text recovers a different address and fails verification, so
// a signature cannot be replayed against another project or nonce.
func VoteMessage(projectID, nonce string) string {
	return fmt.Sprintf("VOTE:%s:%s", projectID, nonce)
}

// RecoverAddress recovers the signer of an EIP-191 personal_sign signature
// over message. It does not compare the result to any claimed address.
//
// Browser wallets emit the recovery byte as 27/28; raw crypto.Sign output
// uses 0/1. Both are accepted.
func RecoverAddress(message, signatureHex string) (common.Address, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(signatureHex, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSignature, crypto.SignatureLength, len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
