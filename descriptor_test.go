package srp_test

import (
	"bytes"
	"crypto"
	"strings"
	"testing"

	srp "github.com/opensrp/srp6a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor_RoundTripsThroughYAML(t *testing.T) {
	original := srp.DefaultParameters()

	var buf bytes.Buffer
	require.NoError(t, original.WriteDescriptor(&buf))

	loaded, err := srp.LoadParameters(&buf)
	require.NoError(t, err)

	assert.True(t, original.N.Equals(loaded.N))
	assert.True(t, original.G.Equals(loaded.G))
	assert.True(t, original.K.Equals(loaded.K))
	assert.Equal(t, original.PaddedLength, loaded.PaddedLength)
}

func TestDescriptor_HashNameIsLowercase(t *testing.T) {
	params, err := srp.NewParametersWithGroup(2048, crypto.SHA384)
	require.NoError(t, err)

	d, err := params.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "sha384", d.Hash)
}

func TestParametersFromDescriptor_UnknownHash(t *testing.T) {
	d := srp.ParameterDescriptor{
		N:    srp.StandardGroups[2048].N,
		G:    srp.StandardGroups[2048].G,
		Hash: "sha3-256",
	}
	_, err := srp.ParametersFromDescriptor(d)
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.Configuration, kind)
}

func TestLoadParameters_MalformedYAML(t *testing.T) {
	_, err := srp.LoadParameters(strings.NewReader("not: [valid"))
	require.Error(t, err)
}
