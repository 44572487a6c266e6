package srp

import (
	"crypto"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParameterDescriptor is the textual, portable form of an SrpParameters'
// configuration: N and g in hex, and the hash algorithm by name. It is
// an optional encoding layer on top of SrpParameters, not a canonical
// format the core imposes — callers are free to serialize N/g/hash some
// other way.
type ParameterDescriptor struct {
	N    string `yaml:"n"`
	G    string `yaml:"g"`
	Hash string `yaml:"hash"`
}

var hashByName = map[string]crypto.Hash{
	"md5":        crypto.MD5,
	"sha1":       crypto.SHA1,
	"sha256":     crypto.SHA256,
	"sha384":     crypto.SHA384,
	"sha512":     crypto.SHA512,
	"blake2b256": crypto.BLAKE2b_256,
}

var nameByHash = func() map[crypto.Hash]string {
	m := make(map[crypto.Hash]string, len(hashByName))
	for name, h := range hashByName {
		m[h] = name
	}
	return m
}()

// Descriptor returns the portable descriptor for p.
func (p *SrpParameters) Descriptor() (ParameterDescriptor, error) {
	name, ok := nameByHash[p.H.algo]
	if !ok {
		return ParameterDescriptor{}, newError(Configuration, fmt.Sprintf("no descriptor name registered for hash %v", p.H.algo))
	}
	return ParameterDescriptor{
		N:    p.N.ToHex(),
		G:    p.G.ToHex(),
		Hash: name,
	}, nil
}

// WriteDescriptor encodes p's descriptor as YAML to w.
func (p *SrpParameters) WriteDescriptor(w io.Writer) error {
	d, err := p.Descriptor()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(d)
}

// ParametersFromDescriptor builds SrpParameters from a descriptor.
func ParametersFromDescriptor(d ParameterDescriptor) (*SrpParameters, error) {
	algo, ok := hashByName[strings.ToLower(d.Hash)]
	if !ok {
		return nil, newError(Configuration, fmt.Sprintf("unknown hash algorithm %q", d.Hash))
	}
	return NewParameters(d.N, d.G, algo)
}

// LoadParameters reads a YAML-encoded ParameterDescriptor from r and
// builds the SrpParameters it describes.
func LoadParameters(r io.Reader) (*SrpParameters, error) {
	var d ParameterDescriptor
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, wrapError(Configuration, "failed to decode parameter descriptor", err)
	}
	return ParametersFromDescriptor(d)
}
