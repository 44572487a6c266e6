package srp

// SrpClient is the client-side half of the protocol. It holds only an
// immutable reference to SrpParameters and is reentrant; every operation
// takes the values it needs and returns new values rather than mutating
// internal state.
type SrpClient struct {
	Params *SrpParameters
	kdf    KDF
	rand   Randomness
}

// NewSrpClient builds an SrpClient over params using the default
// RFC5054KDF and crypto/rand.Reader. Use NewSrpClientWithOptions to
// override either.
func NewSrpClient(params *SrpParameters) *SrpClient {
	return &SrpClient{Params: params, kdf: RFC5054KDF, rand: DefaultRandomness}
}

// NewSrpClientWithOptions builds an SrpClient with a custom KDF and/or
// randomness source. A nil kdf defaults to RFC5054KDF; a nil rand
// defaults to crypto/rand.Reader.
func NewSrpClientWithOptions(params *SrpParameters, kdf KDF, rand Randomness) *SrpClient {
	if kdf == nil {
		kdf = RFC5054KDF
	}
	if rand == nil {
		rand = DefaultRandomness
	}
	return &SrpClient{Params: params, kdf: kdf, rand: rand}
}

// GenerateSalt returns a fresh random salt s: HashSizeBytes uniform
// bytes, rendered at width 2*HashSizeBytes.
func (c *SrpClient) GenerateSalt() (SrpInteger, error) {
	return RandomInteger(c.rand, c.Params.HashSizeBytes)
}

// DerivePrivateKey computes the client's private key x from salt s and
// the identity/password pair, via the configured KDF (RFC5054KDF by
// default: x = H(s | H(I | ":" | P))). I and P are taken as raw UTF-8
// bytes and are never normalized.
func (c *SrpClient) DerivePrivateKey(s SrpInteger, I, P string) (SrpInteger, error) {
	return c.kdf(c.Params, I, P, s)
}

// DeriveVerifier computes v = g^x mod N, padded to PaddedLength. Run
// once at enrollment; the result is what the server persists.
func (c *SrpClient) DeriveVerifier(x SrpInteger) SrpInteger {
	v := c.Params.G.ModPow(x, c.Params.N)
	return v.Pad(c.Params.PaddedLength)
}

// Enroll runs the full enrollment sequence: generate a salt, derive x,
// derive v. The returned SrpVerifier is what the server persists, keyed
// by I; x itself is discarded.
func (c *SrpClient) Enroll(I, P string) (SrpVerifier, error) {
	s, err := c.GenerateSalt()
	if err != nil {
		return SrpVerifier{}, err
	}
	x, err := c.DerivePrivateKey(s, I, P)
	if err != nil {
		return SrpVerifier{}, err
	}
	return SrpVerifier{Salt: s, Verifier: c.DeriveVerifier(x)}, nil
}

// GenerateEphemeral samples a fresh private scalar a (HashSizeBytes
// random bytes) and computes the public A = g^a mod N, resampling if
// A mod N == 0.
func (c *SrpClient) GenerateEphemeral() (SrpEphemeral, error) {
	for {
		a, err := RandomInteger(c.rand, c.Params.HashSizeBytes)
		if err != nil {
			return SrpEphemeral{}, err
		}
		A := c.Params.G.ModPow(a, c.Params.N).Pad(c.Params.PaddedLength)
		if A.Mod(c.Params.N).IsZero() {
			continue
		}
		return SrpEphemeral{Secret: a, Public: A}, nil
	}
}

// DeriveSession computes the shared key K and client proof M1 from the
// client's ephemeral secret a, the server's public ephemeral B, the
// salt s, identity I, and private key x.
//
//	u = H(PAD(A) | PAD(B))
//	S = (B - k*g^x) ^ (a + u*x) mod N
//	K = H(S)
//	M1 = H(H(N) xor H(g), H(I), s, PAD(A), PAD(B), K)
func (c *SrpClient) DeriveSession(a, B, s SrpInteger, I string, x SrpInteger) (SrpSession, error) {
	p := c.Params

	if B.Mod(p.N).IsZero() {
		return SrpSession{}, newError(IllegalParameter, "server public ephemeral B is zero mod N")
	}

	A := p.G.ModPow(a, p.N).Pad(p.PaddedLength)

	u, err := p.H.ComputeHash(A.Pad(p.PaddedLength), B.Pad(p.PaddedLength))
	if err != nil {
		return SrpSession{}, err
	}
	if u.IsZero() {
		return SrpSession{}, newError(IllegalParameter, "scrambling parameter u is zero")
	}

	gx := p.G.ModPow(x, p.N)
	kgx := p.K.Mul(gx)
	base := B.Sub(kgx).Mod(p.N)
	exponent := a.Add(u.Mul(x))
	S := base.ModPow(exponent, p.N)

	K, err := p.H.ComputeHash(S)
	if err != nil {
		return SrpSession{}, err
	}
	K = K.Pad(2 * p.HashSizeBytes)

	M1, err := p.computeM1(I, s, A, B, K)
	if err != nil {
		return SrpSession{}, err
	}

	return SrpSession{Key: K, Proof: M1}, nil
}

// VerifySession checks the server's proof M2 against what this client's
// session says it should be, recomputing expected = H(PAD(A), M1, K).
// On mismatch the caller must discard session.Key.
func (c *SrpClient) VerifySession(A SrpInteger, session SrpSession, serverM2 SrpInteger) error {
	expected, err := c.Params.computeM2(A, session.Proof, session.Key)
	if err != nil {
		return err
	}
	if !expected.Equals(serverM2) {
		return newError(BadServerProof, "server proof M2 does not match")
	}
	return nil
}
