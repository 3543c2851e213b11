// Package state packs model attribute snapshots into compact string tokens
// that can cross a render, navigation, or process boundary and be restored
// later.
//
// Tokens come in two protection modes:
//   - Signed (default): msgpack payload, base64-encoded, HMAC-SHA256
//     authenticated. Visible but tamper-proof.
//   - Encrypted: AES-256-GCM. Fully opaque. Use for snapshots carrying
//     anything a client should not read.
package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors for token decoding.
var (
	ErrInvalidFormat    = errors.New("state: invalid token format")
	ErrSignatureInvalid = errors.New("state: signature verification failed")
	ErrDecryptFailed    = errors.New("state: token decryption failed")
)

// Codec encodes and decodes attribute snapshots.
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// NewCodec creates a codec from the given key. Keys shorter than 32 bytes
// are stretched with SHA-256 so any secret works, but a real 32-byte key is
// preferred.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) == 0 {
		return nil, errors.New("state: empty key")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode packs attrs into a token. When sensitive is true the token is
// encrypted; otherwise it is signed.
func (c *Codec) Encode(attrs map[string]any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(attrs)
	if err != nil {
		return "", err
	}
	if sensitive {
		return c.encrypt(packed)
	}
	return c.sign(packed), nil
}

// Decode unpacks a token produced by Encode with the same sensitivity mode.
func (c *Codec) Decode(token string, sensitive bool) (map[string]any, error) {
	var packed []byte
	var err error
	if sensitive {
		packed, err = c.decrypt(token)
	} else {
		packed, err = c.verify(token)
	}
	if err != nil {
		return nil, err
	}

	var attrs map[string]any
	if err := msgpack.Unmarshal(packed, &attrs); err != nil {
		return nil, ErrInvalidFormat
	}
	return attrs, nil
}

// sign produces "payload.signature", both base64url, signature truncated to
// 128 bits.
func (c *Codec) sign(data []byte) string {
	payload := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return payload + "." + sig
}

func (c *Codec) verify(token string) ([]byte, error) {
	payload, sigPart, ok := strings.Cut(token, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	if !hmac.Equal(sig, mac.Sum(nil)[:16]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (c *Codec) encrypt(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) decrypt(token string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if len(sealed) < c.gcm.NonceSize() {
		return nil, ErrInvalidFormat
	}
	nonce, ciphertext := sealed[:c.gcm.NonceSize()], sealed[c.gcm.NonceSize():]
	plain, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
