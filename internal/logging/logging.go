// Package logging builds a structured logger and the public-key field
// helper the wraptoken handlers use to log one line per handled
// instruction — this program's equivalent of the "msg!" syscall trace a
// deployed on-chain program would emit, since there is no such syscall to
// model here. The ledger package does not log.
package logging

import (
	solana "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// New builds a production zap.Logger, falling back to a no-op logger if
// construction fails (e.g. no writable sink in a sandboxed test run) rather
// than letting a logging failure abort program logic.
func New() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Pubkey renders a solana.PublicKey as a zap.Field using its base58 form.
func Pubkey(key string, pk solana.PublicKey) zap.Field {
	return zap.String(key, pk.String())
}
