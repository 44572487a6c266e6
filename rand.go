package srp

import (
	"crypto/rand"
	"io"
)

// Randomness is the RNG contract used throughout this package: uniform
// octets from a cryptographically strong source, safe for concurrent
// use. crypto/rand.Reader satisfies it and is the default everywhere a
// *SrpClient/*SrpServer is constructed without an explicit reader.
type Randomness = io.Reader

// DefaultRandomness is crypto/rand.Reader, the default source of
// randomness for salts and ephemeral secrets.
var DefaultRandomness Randomness = rand.Reader
