package srp

import (
	"crypto"
	"fmt"

	_ "crypto/md5"    // registers crypto.MD5
	_ "crypto/sha1"   // registers crypto.SHA1
	_ "crypto/sha256" // registers crypto.SHA256
	_ "crypto/sha512" // registers crypto.SHA384, crypto.SHA512

	_ "golang.org/x/crypto/blake2b" // registers crypto.BLAKE2b_256
)

// SrpHash adapts a standard crypto.Hash to SRP's "hash a concatenation of
// mixed-typed values, interpret digest as integer" idiom. It is stateless
// and safe to share across goroutines.
type SrpHash struct {
	algo crypto.Hash
	name string
}

// NewSrpHash builds an SrpHash over the given standard algorithm. algo
// must be registered and available (crypto.Hash.Available()).
func NewSrpHash(algo crypto.Hash) (SrpHash, error) {
	if !algo.Available() {
		return SrpHash{}, newError(Configuration, fmt.Sprintf("hash algorithm %v is not available", algo))
	}
	return SrpHash{algo: algo, name: algo.String()}, nil
}

// HashSizeBytes returns the digest byte length of the underlying
// algorithm.
func (h SrpHash) HashSizeBytes() int {
	return h.algo.Size()
}

// AlgorithmName returns an identifier for diagnostic output only; it is
// not used by any protocol computation.
func (h SrpHash) AlgorithmName() string {
	return h.name
}

// toBytes converts one ComputeHash argument to the bytes it contributes.
// Accepted arguments are a hex string (an SrpInteger's
// padded hex form), an SrpInteger, raw bytes (for UTF-8 identity/password
// material that must NOT be hex-decoded), or nil (contributing zero
// bytes). Passing anything else is a programmer error and panics,
// mirroring Go's own behavior for misused variadic APIs with a closed
// type set.
func toBytes(arg any) ([]byte, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		si, err := FromHex(v)
		if err != nil {
			return nil, err
		}
		return si.ToBytes(), nil
	case []byte:
		return v, nil
	case SrpInteger:
		return v.ToBytes(), nil
	default:
		panic(fmt.Sprintf("srp: ComputeHash: unsupported argument type %T", arg))
	}
}

// ComputeHash concatenates the byte representation of each argument (a
// hex string interpreted as its padded SrpInteger byte form, an
// SrpInteger's own byte form, or nothing for nil/empty) and hashes the
// result. The digest is interpreted as a big-endian nonnegative
// SrpInteger of width 2*HashSizeBytes hex digits.
func (h SrpHash) ComputeHash(values ...any) (SrpInteger, error) {
	hasher := h.algo.New()
	for _, v := range values {
		b, err := toBytes(v)
		if err != nil {
			return zeroInt, err
		}
		hasher.Write(b)
	}
	digest := hasher.Sum(nil)
	return FromBytes(digest).Pad(h.HashSizeBytes() * 2), nil
}
