package ledger

import (
	solana "github.com/gagliardetto/solana-go"
)

// ExtensionFlags models the Token-2022 extensions this program cares about.
// T1 mints/accounts never carry any of these.
type ExtensionFlags uint32

const (
	ExtTransferHook ExtensionFlags = 1 << iota
	ExtNonTransferable
	ExtConfidentialTransfer
	ExtMetadataPointer
	ExtTokenMetadata
	ExtPermanentDelegate
	ExtMintCloseAuthority
	ExtDefaultAccountState
)

func (f ExtensionFlags) Has(bit ExtensionFlags) bool { return f&bit != 0 }

// AccountLevelExtensions is the subset of a mint's extensions that also
// require matching space/flags on every token account of that mint. This is
// the predicate CloseStuckEscrow compares an escrow's creation-time snapshot
// against.
func (f ExtensionFlags) AccountLevelExtensions() ExtensionFlags {
	return f & (ExtTransferHook | ExtNonTransferable | ExtConfidentialTransfer)
}

// Mint models a T1 or T2 mint account.
type Mint struct {
	TokenProgram    solana.PublicKey
	Decimals        uint8
	Supply          uint64
	MintAuthority   *solana.PublicKey
	FreezeAuthority *solana.PublicKey
	Extensions      ExtensionFlags

	MetadataPointer     *solana.PublicKey // nil = unset; self-reference allowed
	MetadataPointerSet  bool
	TokenMetadata       *TokenMetadataRecord
	PermanentDelegate   *solana.PublicKey
	ConfidentialAuditor *solana.PublicKey
	MintCloseAuthority  *solana.PublicKey
	DefaultAccountState AccountState
}

// TokenMetadataRecord is the self-hosted (or pointed-to) token-metadata
// interface payload stored on a T2 mint.
type TokenMetadataRecord struct {
	UpdateAuthority    solana.PublicKey
	Mint               solana.PublicKey
	Name               string
	Symbol             string
	URI                string
	AdditionalMetadata map[string]string
	// AdditionalOrder preserves insertion order so sync handlers can produce
	// deterministic UpdateField/RemoveKey sequences in tests.
	AdditionalOrder []string
}

func (r *TokenMetadataRecord) setField(key, value string) {
	if r.AdditionalMetadata == nil {
		r.AdditionalMetadata = make(map[string]string)
	}
	if _, exists := r.AdditionalMetadata[key]; !exists {
		r.AdditionalOrder = append(r.AdditionalOrder, key)
	}
	r.AdditionalMetadata[key] = value
}

func (r *TokenMetadataRecord) removeField(key string) {
	delete(r.AdditionalMetadata, key)
	for i, k := range r.AdditionalOrder {
		if k == key {
			r.AdditionalOrder = append(r.AdditionalOrder[:i], r.AdditionalOrder[i+1:]...)
			break
		}
	}
}

// AccountState mirrors SPL-Token's account state enum.
type AccountState uint8

const (
	AccountUninitialized AccountState = iota
	AccountInitialized
	AccountFrozen
)

// TokenAccount models a T1 or T2 token account (including escrow accounts).
type TokenAccount struct {
	Mint         solana.PublicKey
	Owner        solana.PublicKey
	TokenProgram solana.PublicKey
	Amount       uint64
	State        AccountState

	// ExtensionsAtCreation snapshots the mint's account-level extension
	// requirements at the moment this account was created. CloseStuckEscrow
	// compares this against the mint's *current* requirements.
	ExtensionsAtCreation ExtensionFlags
}

// AllocateMint reserves a mint-shaped account at pubkey, owned by
// tokenProgram, with no base-mint fields populated yet. This is the
// Allocate+Assign step CreateMint performs before running the mint
// customizer's pre-initialization extension setup, which needs somewhere
// to record extension state ahead of InitializeMint2.
func (l *Ledger) AllocateMint(pubkey, tokenProgram solana.PublicKey) error {
	if err := l.Allocate(pubkey, 0); err != nil {
		return err
	}
	if _, exists := l.mints[pubkey]; exists {
		return ErrAlreadyExists
	}
	l.mints[pubkey] = &Mint{TokenProgram: tokenProgram}
	l.setOwner(pubkey, tokenProgram)
	return nil
}

// InitializeMint2 sets mint's base fields (decimals, authorities). If
// AllocateMint has already reserved pubkey (for pre-init extension setup),
// this fills in the existing record instead of requiring a fresh one.
func (l *Ledger) InitializeMint2(pubkey, tokenProgram solana.PublicKey, decimals uint8, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey) error {
	m, exists := l.mints[pubkey]
	if exists && m.MintAuthority != nil {
		return ErrAlreadyExists
	}
	if !exists {
		m = &Mint{}
		l.mints[pubkey] = m
	}
	m.TokenProgram = tokenProgram
	m.Decimals = decimals
	m.MintAuthority = &mintAuthority
	m.FreezeAuthority = freezeAuthority
	l.setOwner(pubkey, tokenProgram)
	return nil
}

func (l *Ledger) Mint(pubkey solana.PublicKey) (*Mint, bool) {
	m, ok := l.mints[pubkey]
	return m, ok
}

func (l *Ledger) TokenAccountByKey(pubkey solana.PublicKey) (*TokenAccount, bool) {
	ta, ok := l.tokenAccounts[pubkey]
	return ta, ok
}

// CreateTokenAccount creates a token account for mint/owner under
// tokenProgram, snapshotting the mint's current account-level extension
// requirements. Used both for ordinary user accounts and for (re)creating
// the escrow as an ATA.
func (l *Ledger) CreateTokenAccount(pubkey, mint, owner, tokenProgram solana.PublicKey) error {
	if _, exists := l.tokenAccounts[pubkey]; exists {
		return ErrAlreadyExists
	}
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	state := AccountInitialized
	if m.DefaultAccountState == AccountFrozen {
		state = AccountFrozen
	}
	l.tokenAccounts[pubkey] = &TokenAccount{
		Mint:                 mint,
		Owner:                owner,
		TokenProgram:         tokenProgram,
		State:                state,
		ExtensionsAtCreation: m.Extensions.AccountLevelExtensions(),
	}
	l.setOwner(pubkey, tokenProgram)
	return nil
}

// MintTo signed by the mint authority (a program-derived address, so the
// caller passes the seed-derived pubkey as a signer directly; there is no
// real signature to check, only presence in signers).
func (l *Ledger) MintTo(mint, destination solana.PublicKey, amount uint64, signers map[solana.PublicKey]bool) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	if m.MintAuthority == nil || !signers[*m.MintAuthority] {
		return ErrMissingSignature
	}
	dest, ok := l.tokenAccounts[destination]
	if !ok {
		return ErrAccountNotFound
	}
	if dest.Mint != mint {
		return ErrInvalidAccountOwner
	}
	newSupply := m.Supply + amount
	if newSupply < m.Supply {
		return ErrArithmeticOverflow
	}
	m.Supply = newSupply
	dest.Amount += amount
	return nil
}

// Burn signed by the source account's transfer authority.
func (l *Ledger) Burn(mint, source solana.PublicKey, amount uint64, authority solana.PublicKey, signers map[solana.PublicKey]bool) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	src, ok := l.tokenAccounts[source]
	if !ok {
		return ErrAccountNotFound
	}
	if src.Mint != mint {
		return ErrInvalidAccountOwner
	}
	if src.Owner != authority || !l.authorized(authority, signers) {
		return ErrMissingSignature
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	src.Amount -= amount
	m.Supply -= amount
	return nil
}

// TransferChecked moves amount between two accounts of the same mint,
// verifying decimals the way the real instruction does.
func (l *Ledger) TransferChecked(mint, source, destination solana.PublicKey, amount uint64, decimals uint8, authority solana.PublicKey, signers map[solana.PublicKey]bool) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	if m.Decimals != decimals {
		return ErrInvalidInstructionArg
	}
	src, ok := l.tokenAccounts[source]
	if !ok {
		return ErrAccountNotFound
	}
	dst, ok := l.tokenAccounts[destination]
	if !ok {
		return ErrAccountNotFound
	}
	if src.Mint != mint || dst.Mint != mint {
		return ErrInvalidAccountOwner
	}
	if src.Owner != authority || !l.authorized(authority, signers) {
		return ErrMissingSignature
	}
	if src.State == AccountFrozen || dst.State == AccountFrozen {
		return ErrInvalidAccountOwner
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}
	src.Amount -= amount
	dst.Amount += amount
	return nil
}

// CloseAccount reclaims a token account's lamports to destination, signed by
// the account's owner, and removes the account from the ledger.
func (l *Ledger) CloseAccount(account, destination, authority solana.PublicKey, signers map[solana.PublicKey]bool) error {
	acc, ok := l.tokenAccounts[account]
	if !ok {
		return ErrAccountNotFound
	}
	if acc.Owner != authority || !l.authorized(authority, signers) {
		return ErrMissingSignature
	}
	lamports := l.lamports[account]
	l.lamports[account] = 0
	l.lamports[destination] += lamports
	delete(l.tokenAccounts, account)
	delete(l.owners, account)
	return nil
}

// --- Token-2022 extension setup (mint customizer support) -----------------

func (l *Ledger) InitializeConfidentialTransferMint(mint solana.PublicKey, auditor *solana.PublicKey) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	m.Extensions |= ExtConfidentialTransfer
	m.ConfidentialAuditor = auditor
	return nil
}

func (l *Ledger) InitializeMetadataPointer(mint solana.PublicKey, authority, target *solana.PublicKey) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	m.Extensions |= ExtMetadataPointer
	m.MetadataPointer = target
	m.MetadataPointerSet = target != nil
	return nil
}

func (l *Ledger) InitializePermanentDelegate(mint solana.PublicKey, delegate solana.PublicKey) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	m.Extensions |= ExtPermanentDelegate
	m.PermanentDelegate = &delegate
	return nil
}

func (l *Ledger) InitializeMintCloseAuthority(mint, authority solana.PublicKey) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	m.Extensions |= ExtMintCloseAuthority
	m.MintCloseAuthority = &authority
	return nil
}

// --- Token-metadata interface (Initialize / UpdateField / RemoveKey) ------

func (l *Ledger) TokenMetadataInitialize(mint, updateAuthority solana.PublicKey, name, symbol, uri string, signers map[solana.PublicKey]bool) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	if m.MintAuthority == nil || !signers[*m.MintAuthority] {
		return ErrMissingSignature
	}
	m.Extensions |= ExtTokenMetadata
	m.TokenMetadata = &TokenMetadataRecord{
		UpdateAuthority: updateAuthority,
		Mint:            mint,
		Name:            name,
		Symbol:          symbol,
		URI:             uri,
	}
	return nil
}

func (l *Ledger) TokenMetadataUpdateField(mint solana.PublicKey, field, value string, signers map[solana.PublicKey]bool) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	if m.TokenMetadata == nil {
		return ErrAccountNotFound
	}
	if !signers[m.TokenMetadata.UpdateAuthority] {
		return ErrMissingSignature
	}
	switch field {
	case "name":
		m.TokenMetadata.Name = value
	case "symbol":
		m.TokenMetadata.Symbol = value
	case "uri":
		m.TokenMetadata.URI = value
	default:
		m.TokenMetadata.setField(field, value)
	}
	return nil
}

func (l *Ledger) TokenMetadataRemoveKey(mint solana.PublicKey, key string, signers map[solana.PublicKey]bool) error {
	m, ok := l.mints[mint]
	if !ok {
		return ErrAccountNotFound
	}
	if m.TokenMetadata == nil {
		return ErrAccountNotFound
	}
	if !signers[m.TokenMetadata.UpdateAuthority] {
		return ErrMissingSignature
	}
	m.TokenMetadata.removeField(key)
	return nil
}
