package srp

import (
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/cronokirby/saferith"
)

// SrpInteger is a fixed-width nonnegative integer. The width (in hex
// digits) travels with the value and controls how it serializes; it does
// not participate in equality.
type SrpInteger struct {
	val   *big.Int
	width int // hex digit width; always even
}

// zeroInt is the canonical zero-width zero value, returned on parse errors
// alongside a non-nil error so callers that ignore the error still get a
// well-formed (if useless) value rather than a nil pointer panic.
var zeroInt = SrpInteger{val: big.NewInt(0), width: 0}

func evenWidth(w int) int {
	if w%2 == 1 {
		return w + 1
	}
	return w
}

// FromHex parses a hex string into an SrpInteger. The input may mix
// case; serialization always lowercases. The carried width is the
// input's length padded up to the next even digit count.
func FromHex(hex string) (SrpInteger, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return SrpInteger{val: big.NewInt(0), width: 0}, nil
	}
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return zeroInt, newError(IllegalParameter, fmt.Sprintf("malformed hex string %q", hex))
	}
	return SrpInteger{val: n, width: evenWidth(len(hex))}, nil
}

// MustFromHex is FromHex but panics on error; intended for package-level
// literals (standard group tables) where the input is not caller-supplied.
func MustFromHex(hex string) SrpInteger {
	v, err := FromHex(hex)
	if err != nil {
		panic(err)
	}
	return v
}

// FromDecimal parses a decimal string (used for small values such as the
// generator g) into an SrpInteger. Width is derived from the value's
// minimal byte length.
func FromDecimal(dec string) (SrpInteger, error) {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		return zeroInt, newError(IllegalParameter, fmt.Sprintf("malformed decimal string %q", dec))
	}
	return SrpInteger{val: n, width: evenWidth(len(n.Text(16)))}, nil
}

// FromInt wraps a small nonnegative int (e.g. a generator) as an
// SrpInteger.
func FromInt(v int64) SrpInteger {
	n := big.NewInt(v)
	return SrpInteger{val: n, width: evenWidth(len(n.Text(16)))}
}

// FromBytes interprets b as a big-endian nonnegative integer, with width
// fixed at 2*len(b) hex digits.
func FromBytes(b []byte) SrpInteger {
	return SrpInteger{val: new(big.Int).SetBytes(b), width: len(b) * 2}
}

// RandomInteger samples n bytes from reader (which must supply uniform
// octets from a cryptographically strong source) and returns the result
// as an SrpInteger of width 2*n hex digits.
func RandomInteger(reader io.Reader, n int) (SrpInteger, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(reader, b); err != nil {
		return zeroInt, wrapError(IllegalParameter, "failed to read random bytes", err)
	}
	return FromBytes(b), nil
}

// Pad returns a copy of v with its width forced to width, regardless of
// the value's minimal representation. Width must be at least the number
// of hex digits needed to represent v; padding never truncates.
func (v SrpInteger) Pad(width int) SrpInteger {
	width = evenWidth(width)
	minWidth := evenWidth(len(v.val.Text(16)))
	if v.val.Sign() == 0 {
		minWidth = 0
	}
	if width < minWidth {
		width = minWidth
	}
	return SrpInteger{val: v.val, width: width}
}

func maxWidth(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Add returns v + other, width = max(widths).
func (v SrpInteger) Add(other SrpInteger) SrpInteger {
	return SrpInteger{val: new(big.Int).Add(v.val, other.val), width: maxWidth(v.width, other.width)}
}

// Sub returns v - other, width = max(widths). The caller is responsible
// for keeping results nonnegative where SRP requires it (by adding the
// modulus back in, as DeriveSession does).
func (v SrpInteger) Sub(other SrpInteger) SrpInteger {
	return SrpInteger{val: new(big.Int).Sub(v.val, other.val), width: maxWidth(v.width, other.width)}
}

// Mul returns v * other, width = max(widths).
func (v SrpInteger) Mul(other SrpInteger) SrpInteger {
	return SrpInteger{val: new(big.Int).Mul(v.val, other.val), width: maxWidth(v.width, other.width)}
}

// Mod returns v mod m, width = max(widths).
func (v SrpInteger) Mod(m SrpInteger) SrpInteger {
	r := new(big.Int).Mod(v.val, m.val)
	return SrpInteger{val: r, width: maxWidth(v.width, m.width)}
}

// ModPow returns base^exp mod m, computed through a constant-time
// exponentiation (github.com/cronokirby/saferith) since every modular
// exponentiation in SRP has at least one secret operand (a, b, or x).
// m must be positive. Result width is m's width.
func (v SrpInteger) ModPow(exp, m SrpInteger) SrpInteger {
	if m.val.Sign() <= 0 {
		panic("srp: ModPow requires a positive modulus")
	}
	bitLen := m.val.BitLen()
	if bitLen == 0 {
		bitLen = 1
	}
	base := new(saferith.Nat).SetBig(v.val, bitLen)
	exponent := new(saferith.Nat).SetBig(exp.val, maxBitLen(exp.val, bitLen))
	modulus := saferith.ModulusFromNat(new(saferith.Nat).SetBig(m.val, bitLen))
	result := new(saferith.Nat).Exp(base, exponent, modulus)
	return SrpInteger{val: new(big.Int).SetBytes(result.Bytes()), width: m.width}
}

func maxBitLen(x *big.Int, floor int) int {
	if b := x.BitLen(); b > floor {
		return b
	}
	return floor
}

// Xor returns the bitwise exclusive-or of v and other's byte
// representations, both padded to max(widths) first. Used for
// H(N) xor H(g) in the client/server proof formula.
func (v SrpInteger) Xor(other SrpInteger) SrpInteger {
	w := maxWidth(v.width, other.width)
	a := v.Pad(w).ToBytes()
	b := other.Pad(w).ToBytes()
	out := make([]byte, len(a))
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return SrpInteger{val: new(big.Int).SetBytes(out), width: w}
}

// IsZero reports whether v is zero-valued.
func (v SrpInteger) IsZero() bool {
	return v.val.Sign() == 0
}

// Equals compares values (not widths) using a constant-time byte
// comparison over each side's maximal padded representation.
func (v SrpInteger) Equals(other SrpInteger) bool {
	w := maxWidth(evenWidth(len(v.val.Text(16))), evenWidth(len(other.val.Text(16))))
	if w == 0 {
		w = 2
	}
	a := v.Pad(w).ToBytes()
	b := other.Pad(w).ToBytes()
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ToHex renders v as exactly v.width lowercase hex digits, zero-padded on
// the left.
func (v SrpInteger) ToHex() string {
	s := v.val.Text(16)
	if len(s) < v.width {
		s = strings.Repeat("0", v.width-len(s)) + s
	}
	return s
}

// ToBytes renders v as ceil(width/2) big-endian bytes.
func (v SrpInteger) ToBytes() []byte {
	n := (v.width + 1) / 2
	b := v.val.Bytes()
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

// Width reports the carried hex-digit width.
func (v SrpInteger) Width() int {
	return v.width
}

// BigInt exposes the underlying value for callers that need raw math/big
// interop (e.g. constructing descriptors). It must not be mutated.
func (v SrpInteger) BigInt() *big.Int {
	return v.val
}

// String implements fmt.Stringer for diagnostics; same as ToHex.
func (v SrpInteger) String() string {
	return v.ToHex()
}
