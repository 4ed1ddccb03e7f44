package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Wallet holds a private key in hex and the address derived from it.
type Wallet struct {
	PrivateKey string
	Address    string
}

// Generate creates a new secp256k1 key.
func Generate() (*Wallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return fromKey(privateKey), nil
}

func fromKey(key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(key)),
		Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}
}

// ParsePrivateKey accepts a hex key with or without the 0x prefix.
func ParsePrivateKey(privKeyHex string) (*ecdsa.PrivateKey, error) {
	privKeyHex = strings.TrimSpace(privKeyHex)
	privKeyHex = strings.TrimPrefix(strings.TrimPrefix(privKeyHex, "0x"), "0X")

	key, err := crypto.HexToECDSA(privKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}
	return key, nil
}

// LoadKeystore decrypts a go-ethereum keystore JSON file.
func LoadKeystore(path, passphrase string) (*ecdsa.PrivateKey, error) {
	keyJSON, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read keystore %s", path)
	}

	key, err := keystore.DecryptKey(keyJSON, passphrase)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt keystore")
	}
	return key.PrivateKey, nil
}

// SaveKeystore encrypts w into dir and returns the path of the new file.
func SaveKeystore(w *Wallet, dir, passphrase string) (string, error) {
	key, err := ParsePrivateKey(w.PrivateKey)
	if err != nil {
		return "", err
	}

	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	account, err := ks.ImportECDSA(key, passphrase)
	if err != nil {
		return "", errors.Wrap(err, "import key")
	}
	return account.URL.Path, nil
}
