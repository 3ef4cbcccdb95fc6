package metadata

// decodeTokenMetadata parses a raw token-metadata-interface payload (the
// bytes a third-party program's Emit CPI hands back via return data) into a
// Record. The wire shape is Borsh: update_authority(32) + mint(32) +
// name/symbol/uri as length-prefixed strings + a length-prefixed vector of
// (key, value) string pairs for the additional-metadata map. This mirrors
// the Token-2022 TokenMetadata layout that an RPC-reading client
// documents and decodes off the mint account directly; here the same
// layout arrives as Emit return data instead of inline account bytes.

import (
	"encoding/binary"
	"errors"

	solana "github.com/gagliardetto/solana-go"
)

type byteReader struct {
	b []byte
	i int
}

func (r *byteReader) remaining() int { return len(r.b) - r.i }

func (r *byteReader) take(n int) ([]byte, bool) {
	if n < 0 || r.i+n > len(r.b) {
		return nil, false
	}
	v := r.b[r.i : r.i+n]
	r.i += n
	return v, true
}

func (r *byteReader) u32() (uint32, bool) {
	buf, ok := r.take(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf), true
}

func (r *byteReader) borshString() (string, bool) {
	n, ok := r.u32()
	if !ok || int(n) > r.remaining() {
		return "", false
	}
	buf, ok := r.take(int(n))
	if !ok {
		return "", false
	}
	return string(buf), true
}

var errMalformedTokenMetadata = errors.New("metadata: malformed token-metadata payload")

// decodeTokenMetadata decodes a raw token-metadata-interface payload. The
// embedded mint field is read but not compared with anything: the returned
// Record's Mint is always viewingMint.
func decodeTokenMetadata(data []byte, viewingMint solana.PublicKey) (Record, error) {
	r := &byteReader{b: data}

	updateAuthorityBytes, ok := r.take(32)
	if !ok {
		return Record{}, errMalformedTokenMetadata
	}
	mintBytes, ok := r.take(32)
	if !ok {
		return Record{}, errMalformedTokenMetadata
	}
	name, ok := r.borshString()
	if !ok {
		return Record{}, errMalformedTokenMetadata
	}
	symbol, ok := r.borshString()
	if !ok {
		return Record{}, errMalformedTokenMetadata
	}
	uri, ok := r.borshString()
	if !ok {
		return Record{}, errMalformedTokenMetadata
	}

	out := Record{
		UpdateAuthority: solana.PublicKeyFromBytes(updateAuthorityBytes),
		Mint:            viewingMint,
		Name:            name,
		Symbol:          symbol,
		URI:             uri,
	}
	_ = mintBytes // the embedded source mint is informational only; we view through viewingMint

	count, ok := r.u32()
	if !ok {
		return Record{}, errMalformedTokenMetadata
	}
	for i := uint32(0); i < count; i++ {
		key, ok := r.borshString()
		if !ok {
			return Record{}, errMalformedTokenMetadata
		}
		value, ok := r.borshString()
		if !ok {
			return Record{}, errMalformedTokenMetadata
		}
		out.set(key, value)
	}
	return out, nil
}

// EncodeTokenMetadata is the encode-side counterpart, used by tests to
// build mock third-party-program Emit responses.
func EncodeTokenMetadata(r Record, sourceMint solana.PublicKey) []byte {
	buf := make([]byte, 0, 128)
	buf = append(buf, r.UpdateAuthority.Bytes()...)
	buf = append(buf, sourceMint.Bytes()...)
	buf = appendBorshString(buf, r.Name)
	buf = appendBorshString(buf, r.Symbol)
	buf = appendBorshString(buf, r.URI)

	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, uint32(len(r.AdditionalOrder)))
	buf = append(buf, count...)
	for _, key := range r.AdditionalOrder {
		buf = appendBorshString(buf, key)
		buf = appendBorshString(buf, r.AdditionalFields[key])
	}
	return buf
}

func appendBorshString(buf []byte, s string) []byte {
	length := make([]byte, 4)
	binary.LittleEndian.PutUint32(length, uint32(len(s)))
	buf = append(buf, length...)
	buf = append(buf, []byte(s)...)
	return buf
}
