// Package ledger is a minimal in-process host for the cross-program calls
// this program issues: the system program, the T1/T2 token programs, the
// Metaplex metadata program, and the token-metadata interface. It exists so
// the handlers in package wraptoken can run end-to-end in tests the way the
// original program runs against a local validator — it is not a
// reimplementation of any of those programs' full behavior, only the slice
// of it this program's CPIs touch.
package ledger

import (
	"errors"
	"fmt"

	solana "github.com/gagliardetto/solana-go"
)

// Real Solana rent-exemption constants, used so Rent() below produces
// numbers with the right order of magnitude for tests asserting on funding.
const (
	accountStorageOverhead   = 128
	lamportsPerByteYear      = 3480
	rentExemptionThresholdX2 = 2
)

var (
	ErrAccountNotFound       = errors.New("ledger: account not found")
	ErrAlreadyExists         = errors.New("ledger: account already exists")
	ErrInsufficientFunds     = errors.New("ledger: insufficient lamports")
	ErrInvalidAccountOwner   = errors.New("ledger: invalid account owner")
	ErrMissingSignature      = errors.New("ledger: required signature missing")
	ErrNotEnoughAccountKeys  = errors.New("ledger: not enough account keys")
	ErrAccountNotRentExempt  = errors.New("ledger: account not rent exempt")
	ErrArithmeticOverflow    = errors.New("ledger: arithmetic overflow")
	ErrInvalidInstructionArg = errors.New("ledger: invalid instruction argument")
	ErrInvalidAccountData    = errors.New("ledger: invalid account data")
	ErrIncorrectProgramID    = errors.New("ledger: incorrect program id")
)

// SystemProgramID is Solana's system program id: the all-zero key, which
// base58-encodes as 11111111111111111111111111111111.
var SystemProgramID = solana.PublicKey{}

// Ledger holds every account this simulation knows about, split by the kind
// of state the real runtime would store for it. A single solana.PublicKey
// address space is shared across all of these maps, matching Solana's
// unified account model.
type Ledger struct {
	lamports      map[solana.PublicKey]uint64
	owners        map[solana.PublicKey]solana.PublicKey
	mints         map[solana.PublicKey]*Mint
	tokenAccounts map[solana.PublicKey]*TokenAccount
	records       map[solana.PublicKey][]byte
	metaplex      map[solana.PublicKey]*MetaplexMetadata

	returnData     []byte
	returnDataFrom solana.PublicKey

	externalPrograms map[solana.PublicKey]ExternalProgramHandler
	multisigs        map[solana.PublicKey]*Multisig
}

// Multisig models an M-of-N SPL-Token multisig account. A token account's
// Owner (or Delegate) field may name a multisig instead of a single wallet;
// authorized() then requires M of the multisig's N signers to be present.
type Multisig struct {
	M       uint8
	Signers []solana.PublicKey
}

// CreateMultisig registers pubkey as an M-of-N multisig, the way the token
// program's InitializeMultisig2 instruction would.
func (l *Ledger) CreateMultisig(pubkey solana.PublicKey, m uint8, signers []solana.PublicKey) error {
	if _, exists := l.multisigs[pubkey]; exists {
		return ErrAlreadyExists
	}
	if int(m) > len(signers) || m == 0 {
		return ErrInvalidInstructionArg
	}
	cp := make([]solana.PublicKey, len(signers))
	copy(cp, signers)
	l.multisigs[pubkey] = &Multisig{M: m, Signers: cp}
	return nil
}

// authorized reports whether signers satisfies authority: either authority
// itself signed directly, or authority names a registered multisig and at
// least M of its constituent signers are present. This is the single choke
// point transfer/burn/close route through, so multisig support applies
// uniformly everywhere an authority check happens.
func (l *Ledger) authorized(authority solana.PublicKey, signers map[solana.PublicKey]bool) bool {
	if ms, ok := l.multisigs[authority]; ok {
		count := 0
		for _, s := range ms.Signers {
			if signers[s] {
				count++
			}
		}
		return count >= int(ms.M)
	}
	return signers[authority]
}

// ExternalProgramHandler simulates a third-party program's Emit handler: it
// receives the account being emitted and returns the bytes that program
// would have written via set_return_data.
type ExternalProgramHandler func(l *Ledger, account solana.PublicKey) ([]byte, error)

func New() *Ledger {
	return &Ledger{
		lamports:         make(map[solana.PublicKey]uint64),
		owners:           make(map[solana.PublicKey]solana.PublicKey),
		mints:            make(map[solana.PublicKey]*Mint),
		tokenAccounts:    make(map[solana.PublicKey]*TokenAccount),
		records:          make(map[solana.PublicKey][]byte),
		metaplex:         make(map[solana.PublicKey]*MetaplexMetadata),
		externalPrograms: make(map[solana.PublicKey]ExternalProgramHandler),
		multisigs:        make(map[solana.PublicKey]*Multisig),
	}
}

// Rent returns the lamports required for an account of the given size to be
// rent exempt, using Solana's real default rent parameters.
func Rent(size int) uint64 {
	return uint64(size+accountStorageOverhead) * lamportsPerByteYear * rentExemptionThresholdX2
}

// Owner returns the program that owns pubkey. An address with no owner set
// is owned by the system program, matching an uninitialized/funded wallet.
func (l *Ledger) Owner(pubkey solana.PublicKey) solana.PublicKey {
	if owner, ok := l.owners[pubkey]; ok {
		return owner
	}
	return SystemProgramID
}

func (l *Ledger) setOwner(pubkey, owner solana.PublicKey) {
	l.owners[pubkey] = owner
}

// Lamports returns the current balance of pubkey.
func (l *Ledger) Lamports(pubkey solana.PublicKey) uint64 {
	return l.lamports[pubkey]
}

// Fund credits lamports to pubkey without requiring a signer; used by tests
// to stand in for the fee payer funding new accounts.
func (l *Ledger) Fund(pubkey solana.PublicKey, lamports uint64) {
	l.lamports[pubkey] += lamports
}

// DataLen reports whether pubkey currently holds any account-shaped state:
// a mint, a token account, or a program record (Backpointer, canonical
// pointer, Metaplex metadata). Handlers use this to implement
// "W.data.len > 0" idempotency checks without this package exposing a raw
// byte slice for every kind of state.
func (l *Ledger) DataLen(pubkey solana.PublicKey) int {
	if _, ok := l.mints[pubkey]; ok {
		return 1
	}
	if _, ok := l.tokenAccounts[pubkey]; ok {
		return 1
	}
	if data, ok := l.records[pubkey]; ok {
		return len(data)
	}
	if _, ok := l.metaplex[pubkey]; ok {
		return 1
	}
	return 0
}

// --- System program -------------------------------------------------------

// Allocate reserves space for pubkey, failing if it already has a
// non-system owner (mirroring the system program's Allocate instruction).
func (l *Ledger) Allocate(pubkey solana.PublicKey, space uint64) error {
	if l.Owner(pubkey) != SystemProgramID {
		return ErrAlreadyExists
	}
	// Space itself isn't tracked generically; callers (CreateMint,
	// backpointer/canonical-pointer init) immediately Assign + populate the
	// typed state, at which point DataLen reflects the allocation.
	return nil
}

// Assign changes pubkey's owning program.
func (l *Ledger) Assign(pubkey, owner solana.PublicKey) error {
	l.setOwner(pubkey, owner)
	return nil
}

// TransferLamports moves lamports from->to, signed by from (system program
// Transfer). from must be present in signers.
func (l *Ledger) TransferLamports(from, to solana.PublicKey, lamports uint64, signers map[solana.PublicKey]bool) error {
	if !signers[from] {
		return ErrMissingSignature
	}
	if l.lamports[from] < lamports {
		return ErrInsufficientFunds
	}
	l.lamports[from] -= lamports
	l.lamports[to] += lamports
	return nil
}

// RequireRentExempt fails unless pubkey's lamport balance covers rent for
// size bytes.
func (l *Ledger) RequireRentExempt(pubkey solana.PublicKey, size int) error {
	if l.lamports[pubkey] < Rent(size) {
		return ErrAccountNotRentExempt
	}
	return nil
}

// EnsureRentExempt tops pubkey up to rent-exemption for size bytes, signed
// transfer from payer if its current balance falls short. This is the
// reallocation-funding step the metadata sync handlers need: growing a
// mint's token-metadata TLV region requires more rent, paid from the mint
// authority's own lamports via a system-program Transfer CPI.
func (l *Ledger) EnsureRentExempt(pubkey solana.PublicKey, size int, payer solana.PublicKey, signers map[solana.PublicKey]bool) error {
	needed := Rent(size)
	if l.lamports[pubkey] >= needed {
		return nil
	}
	return l.TransferLamports(payer, pubkey, needed-l.lamports[pubkey], signers)
}

// --- Program records (Backpointer / canonical pointer) ---------------------

// WriteRecord stores raw program-owned state (used for Backpointer and
// CanonicalDeploymentPointer, which are transparent byte records rather
// than structured mint/token-account state).
func (l *Ledger) WriteRecord(pubkey, owner solana.PublicKey, data []byte) {
	l.setOwner(pubkey, owner)
	cp := make([]byte, len(data))
	copy(cp, data)
	l.records[pubkey] = cp
}

func (l *Ledger) ReadRecord(pubkey solana.PublicKey) ([]byte, bool) {
	data, ok := l.records[pubkey]
	return data, ok
}

// --- Return data (Emit / get_return_data) ----------------------------------

func (l *Ledger) setReturnData(from solana.PublicKey, data []byte) {
	l.returnDataFrom = from
	l.returnData = data
}

// RegisterExternalProgram installs a mock implementation of a third-party
// program's Emit handler, mirroring the mock-metadata-owner program the
// original program's test suite uses to exercise the third-party-pointer
// resolver branch.
func (l *Ledger) RegisterExternalProgram(programID solana.PublicKey, handler ExternalProgramHandler) {
	l.externalPrograms[programID] = handler
}

// Emit invokes the registered handler for programID (simulating a CPI to
// that program's Emit instruction) and returns whatever it wrote to return
// data. A registered program that returns nothing yields ErrNoReturnData so
// the resolver can surface ExternalProgramReturnedNoData; an unregistered
// program yields a separate "no external program registered" error.
var ErrNoReturnData = errors.New("ledger: external program returned no data")

func (l *Ledger) Emit(programID, account solana.PublicKey) ([]byte, error) {
	handler, ok := l.externalPrograms[programID]
	if !ok {
		return nil, fmt.Errorf("ledger: no external program registered for %s", programID)
	}
	data, err := handler(l, account)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoReturnData
	}
	l.setReturnData(programID, data)
	return data, nil
}
