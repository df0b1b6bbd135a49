// Command signer is a development helper that produces a wallet-compatible
// signature for the canonical vote message without needing a browser wallet.
//
// It derives an Ethereum key from a BIP39 mnemonic along the standard BIP44
// path m/44'/60'/0'/0/<index>, signs VOTE:<project_id>:<nonce> as an EIP-191
// personal message, and prints the address and signature ready to POST to
// /api/vote.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
	"github.com/web3_voting/service"
)

func main() {
	mnemonic := flag.String("mnemonic", "", "BIP39 mnemonic; a new one is generated when empty")
	index := flag.Uint("index", 0, "BIP44 address index")
	projectID := flag.String("project", "", "project id to vote for")
	nonce := flag.String("nonce", "", "nonce issued by POST /api/nonce")
	flag.Parse()

	if *projectID == "" || *nonce == "" {
		log.Fatal("usage: signer -project <id> -nonce <value> [-mnemonic ...] [-index n]")
	}

	if *mnemonic == "" {
		entropy, err := bip39.NewEntropy(128)
		if err != nil {
			log.Fatalf("generate entropy: %v", err)
		}
		*mnemonic, err = bip39.NewMnemonic(entropy)
		if err != nil {
			log.Fatalf("generate mnemonic: %v", err)
		}
		fmt.Println("mnemonic:", *mnemonic)
	}

	key, err := deriveKey(*mnemonic, uint32(*index))
	if err != nil {
		log.Fatalf("derive key: %v", err)
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		log.Fatalf("extract private key: %v", err)
	}
	ecdsaKey := privKey.ToECDSA()
	address := crypto.PubkeyToAddress(ecdsaKey.PublicKey)

	message := service.VoteMessage(*projectID, *nonce)
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), ecdsaKey)
	if err != nil {
		log.Fatalf("sign message: %v", err)
	}
	// Wallets report the recovery byte as 27/28.
	sig[crypto.RecoveryIDOffset] += 27

	fmt.Println("address:  ", address.Hex())
	fmt.Println("message:  ", message)
	fmt.Println("signature:", "0x"+hex.EncodeToString(sig))
}

// deriveKey walks m/44'/60'/0'/0/<index> from the mnemonic seed.
func deriveKey(mnemonic string, index uint32) (*hdkeychain.ExtendedKey, error) {
	seed := bip39.NewSeed(mnemonic, "")
	masterKey, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart + 0,
		0,
		index,
	}
	key := masterKey
	for _, step := range path {
		key, err = key.Derive(step)
		if err != nil {
			return nil, err
		}
	}
	return key, nil
}
