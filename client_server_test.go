package srp_test

import (
	"crypto"
	"sync"
	"testing"

	srp "github.com/opensrp/srp6a"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exchange runs one full enroll + three-round exchange and returns both
// sides' derived sessions, failing the test on any protocol error.
func exchange(t *testing.T, params *srp.SrpParameters, I, P string) (client *srp.SrpClient, server *srp.SrpServer, clientSession, serverSession srp.SrpSession, clientEph srp.SrpEphemeral) {
	t.Helper()

	client = srp.NewSrpClient(params)
	server = srp.NewSrpServer(params)

	verifier, err := client.Enroll(I, P)
	require.NoError(t, err)

	clientEph, err = client.GenerateEphemeral()
	require.NoError(t, err)
	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	require.NoError(t, err)

	x, err := client.DerivePrivateKey(verifier.Salt, I, P)
	require.NoError(t, err)
	clientSession, err = client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, I, x)
	require.NoError(t, err)

	serverSession, err = server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, I, verifier.Verifier, clientSession.Proof)
	require.NoError(t, err)

	return client, server, clientSession, serverSession, clientEph
}

// TestRoundTrip_AllStandardGroups exercises every RFC 5054 group crossed
// with SHA-1, confirming both sides converge on the same key and mutual
// proofs verify.
func TestRoundTrip_AllStandardGroups(t *testing.T) {
	for _, bits := range srp.StandardBitSizes {
		t.Run(groupName(bits), func(t *testing.T) {
			params, err := srp.NewParametersWithGroup(bits, crypto.SHA1)
			require.NoError(t, err)

			client, _, clientSession, serverSession, clientEph := exchange(t, params, "hello", "world")

			assert.True(t, clientSession.Key.Equals(serverSession.Key))
			require.NoError(t, client.VerifySession(clientEph.Public, clientSession, serverSession.Proof))
		})
	}
}

// TestRoundTrip_DefaultGroup exercises the 2048-bit default group with
// SHA-256 and realistic credentials.
func TestRoundTrip_DefaultGroup(t *testing.T) {
	params := srp.DefaultParameters()
	client, _, clientSession, serverSession, clientEph := exchange(t, params, "linus@folkdatorn.se", "$uper$ecure")

	assert.True(t, clientSession.Key.Equals(serverSession.Key))
	require.NoError(t, client.VerifySession(clientEph.Public, clientSession, serverSession.Proof))
}

// TestRoundTrip_CustomGroupSHA512 exercises a custom prime with a hash
// other than the default.
func TestRoundTrip_CustomGroupSHA512(t *testing.T) {
	// A verified 512-bit prime, not from the RFC 5054 table, exercising
	// NewParameters' custom-group construction path.
	const n512 = "c03987108976e334e2817efdae8492171d53434bb88139b9ae270da702f06b" +
		"90f143262fdc5c0eed8da0365bf89897b9405cacec877409a977d21e02ff01cf99"
	params, err := srp.NewParameters(n512, "7", crypto.SHA512)
	require.NoError(t, err)

	client, _, clientSession, serverSession, clientEph := exchange(t, params, "yallie@yandex.ru", "h4ck3r$")

	assert.True(t, clientSession.Key.Equals(serverSession.Key))
	require.NoError(t, client.VerifySession(clientEph.Public, clientSession, serverSession.Proof))
}

// TestRoundTrip_CustomGroupSHA384 exercises the RFC 5054 1024-bit prime
// through the custom-group path, with a non-default generator and SHA-384.
func TestRoundTrip_CustomGroupSHA384(t *testing.T) {
	grp := srp.StandardGroups[1024]
	params, err := srp.NewParameters(grp.N, "07", crypto.SHA384)
	require.NoError(t, err)

	client, _, clientSession, serverSession, clientEph := exchange(t, params, "bozo", "h4ck3r")

	assert.True(t, clientSession.Key.Equals(serverSession.Key))
	require.NoError(t, client.VerifySession(clientEph.Public, clientSession, serverSession.Proof))
}

// TestConcurrentExchanges runs many concurrent exchanges against one
// shared SrpServer/SrpParameters, confirming the stateless design is
// safe under concurrent use.
func TestConcurrentExchanges(t *testing.T) {
	params := srp.DefaultParameters()
	server := srp.NewSrpServer(params)

	const n = 100
	var wg sync.WaitGroup
	errs := make([]error, n)
	keysMatch := make([]bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client := srp.NewSrpClient(params)

			verifier, err := client.Enroll("demo", "insecure")
			if err != nil {
				errs[i] = err
				return
			}
			clientEph, err := client.GenerateEphemeral()
			if err != nil {
				errs[i] = err
				return
			}
			serverEph, err := server.GenerateEphemeral(verifier.Verifier)
			if err != nil {
				errs[i] = err
				return
			}
			x, err := client.DerivePrivateKey(verifier.Salt, "demo", "insecure")
			if err != nil {
				errs[i] = err
				return
			}
			clientSession, err := client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, "demo", x)
			if err != nil {
				errs[i] = err
				return
			}
			serverSession, err := server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, "demo", verifier.Verifier, clientSession.Proof)
			if err != nil {
				errs[i] = err
				return
			}
			keysMatch[i] = clientSession.Key.Equals(serverSession.Key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, keysMatch[i])
	}
}

// TestTamperedClientProofRejected flips the low bit of the client's
// proof before the server verifies it; the server must surface
// BadClientProof and must not yield a usable server session.
func TestTamperedClientProofRejected(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)
	server := srp.NewSrpServer(params)

	verifier, err := client.Enroll("demo", "insecure")
	require.NoError(t, err)

	clientEph, err := client.GenerateEphemeral()
	require.NoError(t, err)
	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	require.NoError(t, err)

	x, err := client.DerivePrivateKey(verifier.Salt, "demo", "insecure")
	require.NoError(t, err)
	clientSession, err := client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, "demo", x)
	require.NoError(t, err)

	tamperedBytes := clientSession.Proof.ToBytes()
	tamperedBytes[len(tamperedBytes)-1] ^= 0x01
	tamperedM1 := srp.FromBytes(tamperedBytes).Pad(clientSession.Proof.Width())

	_, err = server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, "demo", verifier.Verifier, tamperedM1)
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.BadClientProof, kind)
}

func TestDeriveSession_WrongPasswordFailsClientProof(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)
	server := srp.NewSrpServer(params)

	verifier, err := client.Enroll("alice", "correct horse")
	require.NoError(t, err)

	clientEph, err := client.GenerateEphemeral()
	require.NoError(t, err)
	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	require.NoError(t, err)

	// Client derives x from a wrong password.
	wrongX, err := client.DerivePrivateKey(verifier.Salt, "alice", "wrong password")
	require.NoError(t, err)
	clientSession, err := client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, "alice", wrongX)
	require.NoError(t, err)

	_, err = server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, "alice", verifier.Verifier, clientSession.Proof)
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.BadClientProof, kind)
}

func TestDeriveSession_WrongIdentityFailsClientProof(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)
	server := srp.NewSrpServer(params)

	verifier, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)

	clientEph, err := client.GenerateEphemeral()
	require.NoError(t, err)
	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	require.NoError(t, err)

	x, err := client.DerivePrivateKey(verifier.Salt, "alice", "hunter2")
	require.NoError(t, err)
	// Client computes M1 under a different identity than what the server
	// has the verifier keyed by.
	clientSession, err := client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, "eve", x)
	require.NoError(t, err)

	_, err = server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, "alice", verifier.Verifier, clientSession.Proof)
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.BadClientProof, kind)
}

func TestVerifySession_TamperedM2Rejected(t *testing.T) {
	params := srp.DefaultParameters()
	client, _, clientSession, serverSession, clientEph := exchange(t, params, "alice", "hunter2")

	tamperedBytes := serverSession.Proof.ToBytes()
	tamperedBytes[len(tamperedBytes)-1] ^= 0x01
	tamperedM2 := srp.FromBytes(tamperedBytes).Pad(serverSession.Proof.Width())

	err := client.VerifySession(clientEph.Public, clientSession, tamperedM2)
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.BadServerProof, kind)
}

func TestGenerateEphemeral_ClientAndServerNeverZeroModN(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)
	server := srp.NewSrpServer(params)

	verifier, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		eph, err := client.GenerateEphemeral()
		require.NoError(t, err)
		assert.False(t, eph.Public.Mod(params.N).IsZero())

		serverEph, err := server.GenerateEphemeral(verifier.Verifier)
		require.NoError(t, err)
		assert.False(t, serverEph.Public.Mod(params.N).IsZero())
	}
}

func TestDeriveSession_RejectsZeroClientPublic(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)
	server := srp.NewSrpServer(params)

	verifier, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)

	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	require.NoError(t, err)

	zeroA := srp.FromInt(0).Pad(params.PaddedLength)
	_, err = server.DeriveSession(serverEph.Secret, zeroA, verifier.Salt, "alice", verifier.Verifier, srp.FromInt(0))
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.IllegalParameter, kind)
}

func TestDeriveSession_RejectsZeroServerPublic(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)

	verifier, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)

	clientEph, err := client.GenerateEphemeral()
	require.NoError(t, err)

	x, err := client.DerivePrivateKey(verifier.Salt, "alice", "hunter2")
	require.NoError(t, err)

	zeroB := srp.FromInt(0).Pad(params.PaddedLength)
	_, err = client.DeriveSession(clientEph.Secret, zeroB, verifier.Salt, "alice", x)
	require.Error(t, err)
	kind, ok := srp.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, srp.IllegalParameter, kind)
}

func TestEnroll_SaltIsFreshEachTime(t *testing.T) {
	params := srp.DefaultParameters()
	client := srp.NewSrpClient(params)

	a, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)
	b, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)

	assert.False(t, a.Salt.Equals(b.Salt))
	assert.False(t, a.Verifier.Equals(b.Verifier), "verifier must depend on a fresh salt each enrollment")
}

func TestArgon2KDF_ProducesWorkingSession(t *testing.T) {
	params := srp.DefaultParameters()
	kdf := srp.Argon2KDF(1, 64*1024, 4)
	client := srp.NewSrpClientWithOptions(params, kdf, nil)
	server := srp.NewSrpServer(params)

	verifier, err := client.Enroll("alice", "hunter2")
	require.NoError(t, err)

	clientEph, err := client.GenerateEphemeral()
	require.NoError(t, err)
	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	require.NoError(t, err)

	x, err := client.DerivePrivateKey(verifier.Salt, "alice", "hunter2")
	require.NoError(t, err)
	clientSession, err := client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, "alice", x)
	require.NoError(t, err)

	serverSession, err := server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, "alice", verifier.Verifier, clientSession.Proof)
	require.NoError(t, err)

	assert.True(t, clientSession.Key.Equals(serverSession.Key))
	require.NoError(t, client.VerifySession(clientEph.Public, clientSession, serverSession.Proof))
}
