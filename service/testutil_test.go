package service_test

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/web3_voting/model"
	"github.com/web3_voting/repository"
	"github.com/web3_voting/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// keep the in-memory database alive across pooled connections
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.AutoMigrate(db))
	return db
}

func newServices(t *testing.T) (*service.NonceService, *service.VoteService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	nonceSvc := service.NewNonceService(repository.NewNonceRepository(db))
	voteSvc := service.NewVoteService(nonceSvc, repository.NewVoteRepository(db))
	return nonceSvc, voteSvc, db
}

func newTestKey(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
}

// signMessage produces a wallet-style personal_sign signature (hex, 0x
// prefix, recovery byte 27/28).
func signMessage(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return "0x" + hex.EncodeToString(sig)
}

func unusedNonceCount(t *testing.T, db *gorm.DB, address string) int64 {
	t.Helper()
	var total int64
	require.NoError(t, db.Model(&model.Nonce{}).Where("address = ? AND used = ?", address, false).Count(&total).Error)
	return total
}
