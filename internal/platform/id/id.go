package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator mints opaque identity tokens for views and edit artifacts. Tokens
// carry a kind prefix so host events are attributable in debug logs.
type Generator interface {
	New(kind string) string
}

type RandomHex struct{}

func (RandomHex) New(kind string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	if kind == "" {
		return hex.EncodeToString(buf)
	}
	return kind + "-" + hex.EncodeToString(buf)
}
