package srp

import "golang.org/x/crypto/argon2"

// KDF derives the client's private key x from an identity, password, and
// salt. RFC5054KDF, the standard RFC 5054 formula, is the default;
// Argon2KDF is an optional, stronger alternative for deployments that
// want resistance against offline dictionary attacks on a stolen
// verifier. Every SrpClient operation is unchanged in meaning when
// RFC5054KDF (the default) is used.
type KDF func(params *SrpParameters, I, P string, salt SrpInteger) (SrpInteger, error)

// RFC5054KDF computes x = H(s | H(I | ":" | P)), the RFC 5054 formula.
// I and P are taken as raw UTF-8 bytes; neither is normalized or
// case-folded.
func RFC5054KDF(params *SrpParameters, I, P string, salt SrpInteger) (SrpInteger, error) {
	inner, err := params.H.ComputeHash([]byte(I + ":" + P))
	if err != nil {
		return zeroInt, err
	}
	return params.H.ComputeHash(salt, inner)
}

// Argon2KDF returns a KDF that derives x via Argon2id over I:P with salt
// as the Argon2 salt, then folds the result through the configured hash
// so the output stays a hash-sized SrpInteger compatible with every other
// wire value. Deployments that need resistance against offline
// dictionary attacks on a stolen verifier should prefer this over
// RFC5054KDF.
func Argon2KDF(time, memory uint32, threads uint8) KDF {
	return func(params *SrpParameters, I, P string, salt SrpInteger) (SrpInteger, error) {
		keyLen := uint32(params.HashSizeBytes)
		derived := argon2.IDKey([]byte(I+":"+P), salt.ToBytes(), time, memory, threads, keyLen)
		return params.H.ComputeHash(FromBytes(derived))
	}
}
