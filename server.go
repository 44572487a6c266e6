package srp

// SrpServer is the server-side half of the protocol. Like SrpClient it
// holds only an immutable reference to SrpParameters and is reentrant
// across concurrent sessions.
type SrpServer struct {
	Params *SrpParameters
	rand   Randomness
}

// NewSrpServer builds an SrpServer over params using crypto/rand.Reader.
// Use NewSrpServerWithOptions to supply a different randomness source.
func NewSrpServer(params *SrpParameters) *SrpServer {
	return &SrpServer{Params: params, rand: DefaultRandomness}
}

// NewSrpServerWithOptions builds an SrpServer with a custom randomness
// source. A nil rand defaults to crypto/rand.Reader.
func NewSrpServerWithOptions(params *SrpParameters, rand Randomness) *SrpServer {
	if rand == nil {
		rand = DefaultRandomness
	}
	return &SrpServer{Params: params, rand: rand}
}

// GenerateEphemeral samples a fresh private scalar b (HashSizeBytes
// random bytes) and computes B = (k*v + g^b) mod N, resampling if
// B mod N == 0.
func (s *SrpServer) GenerateEphemeral(v SrpInteger) (SrpEphemeral, error) {
	p := s.Params
	for {
		b, err := RandomInteger(s.rand, p.HashSizeBytes)
		if err != nil {
			return SrpEphemeral{}, err
		}
		kv := p.K.Mul(v)
		gb := p.G.ModPow(b, p.N)
		B := kv.Add(gb).Mod(p.N).Pad(p.PaddedLength)
		if B.Mod(p.N).IsZero() {
			continue
		}
		return SrpEphemeral{Secret: b, Public: B}, nil
	}
}

// DeriveSession computes the shared key K and server proof M2 from the
// server's ephemeral secret b, the client's public ephemeral A, the
// salt s, identity I, verifier v, and the client's proof clientM1.
//
//	u = H(PAD(A) | PAD(B)),  B recomputed from b and v
//	S = (A * v^u) ^ b mod N
//	K = H(S)
//	expectedM1 = H(H(N) xor H(g), H(I), s, PAD(A), PAD(B), K)
func (s *SrpServer) DeriveSession(b, A, salt SrpInteger, I string, v, clientM1 SrpInteger) (SrpSession, error) {
	p := s.Params

	if A.Mod(p.N).IsZero() {
		return SrpSession{}, newError(IllegalParameter, "client public ephemeral A is zero mod N")
	}

	kv := p.K.Mul(v)
	gb := p.G.ModPow(b, p.N)
	B := kv.Add(gb).Mod(p.N).Pad(p.PaddedLength)

	u, err := p.H.ComputeHash(A.Pad(p.PaddedLength), B.Pad(p.PaddedLength))
	if err != nil {
		return SrpSession{}, err
	}
	if u.IsZero() {
		return SrpSession{}, newError(IllegalParameter, "scrambling parameter u is zero")
	}

	vu := v.ModPow(u, p.N)
	avu := A.Mul(vu).Mod(p.N)
	S := avu.ModPow(b, p.N)

	K, err := p.H.ComputeHash(S)
	if err != nil {
		return SrpSession{}, err
	}
	K = K.Pad(2 * p.HashSizeBytes)

	expectedM1, err := p.computeM1(I, salt, A, B, K)
	if err != nil {
		return SrpSession{}, err
	}

	if !expectedM1.Equals(clientM1) {
		return SrpSession{}, newError(BadClientProof, "client proof M1 does not match")
	}

	M2, err := p.computeM2(A, clientM1, K)
	if err != nil {
		return SrpSession{}, err
	}

	return SrpSession{Key: K, Proof: M2}, nil
}
