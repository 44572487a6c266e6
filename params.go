package srp

import (
	"crypto"
	"fmt"
)

// SrpParameters is the immutable negotiated context shared by a client and
// server: the group (N, g), the multiplier k, the hash adapter, and the
// padded hex width derived from N. It holds no mutable state and is safe
// to share across any number of concurrent sessions.
type SrpParameters struct {
	N SrpInteger
	G SrpInteger
	K SrpInteger
	H SrpHash

	// PaddedLength is the hex width of N; every A, B, v on the wire is
	// padded to this width.
	PaddedLength int
	// HashSizeBytes is H.HashSizeBytes(), cached for convenience.
	HashSizeBytes int
}

// NewParameters builds SrpParameters from explicit hex N, hex g, and a
// hash algorithm. g is always read as hex, so a decimal string such as
// "19" is taken as 0x19. N is checked for (probable) primality; g must
// be less than N.
func NewParameters(nHex, gHex string, algo crypto.Hash) (*SrpParameters, error) {
	n, err := FromHex(nHex)
	if err != nil {
		return nil, wrapError(Configuration, "invalid N", err)
	}
	if !n.val.ProbablyPrime(20) {
		return nil, newError(Configuration, "N does not appear to be prime")
	}

	g, err := FromHex(gHex)
	if err != nil {
		// Every decimal digit string is also valid hex, so this decimal
		// fallback is reached only for input that is not hex either.
		g, err = FromDecimal(gHex)
		if err != nil {
			return nil, wrapError(Configuration, "invalid g", err)
		}
	}
	if g.val.Cmp(n.val) >= 0 {
		return nil, newError(Configuration, "g must be less than N")
	}

	return newParameters(n, g, algo)
}

// NewParametersWithGroup builds SrpParameters from one of the seven RFC
// 5054 standard groups cross-produced with a hash algorithm.
func NewParametersWithGroup(bits int, algo crypto.Hash) (*SrpParameters, error) {
	grp, ok := StandardGroups[bits]
	if !ok {
		return nil, newError(Configuration, fmt.Sprintf("unknown standard group size %d", bits))
	}
	n := MustFromHex(grp.N)
	g, err := FromDecimal(grp.G)
	if err != nil {
		return nil, wrapError(Configuration, "invalid built-in generator", err)
	}
	return newParameters(n, g, algo)
}

// DefaultParameters returns the default negotiated context: the 2048-bit
// RFC 5054 group with SHA-256.
func DefaultParameters() *SrpParameters {
	p, err := NewParametersWithGroup(2048, crypto.SHA256)
	if err != nil {
		// The built-in 2048-bit group and SHA-256 are always valid; a
		// failure here is a bug in this package, not caller input.
		panic(err)
	}
	return p
}

// computeM1 computes M1 = H(H(N) xor H(PAD(g)), H(I), s, PAD(A), PAD(B), K),
// the proof formula shared verbatim by SrpClient.DeriveSession and
// SrpServer.DeriveSession.
func (p *SrpParameters) computeM1(I string, salt, A, B, K SrpInteger) (SrpInteger, error) {
	hn, err := p.H.ComputeHash(p.N.ToHex())
	if err != nil {
		return zeroInt, err
	}
	hg, err := p.H.ComputeHash(p.G.ToHex())
	if err != nil {
		return zeroInt, err
	}
	hi, err := p.H.ComputeHash([]byte(I))
	if err != nil {
		return zeroInt, err
	}
	return p.H.ComputeHash(
		hn.Xor(hg),
		hi,
		salt,
		A.Pad(p.PaddedLength),
		B.Pad(p.PaddedLength),
		K,
	)
}

// computeM2 computes M2 = H(PAD(A), M1, K).
func (p *SrpParameters) computeM2(A, M1, K SrpInteger) (SrpInteger, error) {
	return p.H.ComputeHash(A.Pad(p.PaddedLength), M1, K)
}

func newParameters(n, g SrpInteger, algo crypto.Hash) (*SrpParameters, error) {
	h, err := NewSrpHash(algo)
	if err != nil {
		return nil, err
	}

	paddedLength := n.Width()
	n = n.Pad(paddedLength)
	gPadded := g.Pad(paddedLength)

	k, err := h.ComputeHash(n.ToHex(), gPadded.ToHex())
	if err != nil {
		return nil, wrapError(Configuration, "failed to compute multiplier k", err)
	}
	k = k.Mod(n)
	if k.IsZero() {
		return nil, newError(Configuration, "computed multiplier k is zero")
	}

	return &SrpParameters{
		N:             n,
		G:             g,
		K:             k,
		H:             h,
		PaddedLength:  paddedLength,
		HashSizeBytes: h.HashSizeBytes(),
	}, nil
}
