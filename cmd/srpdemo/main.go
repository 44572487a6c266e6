// Command srpdemo runs one full SRP-6a enrollment and exchange between an
// in-process client and server, printing every wire value as it is
// produced. It exists to make the protocol's three rounds concrete; it is
// not a network service.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	srp "github.com/opensrp/srp6a"
)

func main() {
	paramsPath := flag.String("params", "", "path to a YAML parameter descriptor (default: built-in 2048-bit group, SHA-256)")
	identity := flag.String("identity", "alice", "account identity I")
	password := flag.String("password", "hunter2", "account password P")
	flag.Parse()

	if err := run(*paramsPath, *identity, *password); err != nil {
		log.Fatalf("srpdemo: %v", err)
	}
}

func run(paramsPath, I, P string) error {
	params, err := loadParams(paramsPath)
	if err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}
	fmt.Printf("group: %d-bit N, g=%s, hash=%s\n", params.N.Width()*4, params.G.ToHex(), params.H.AlgorithmName())

	client := srp.NewSrpClient(params)
	server := srp.NewSrpServer(params)

	// Enrollment: the client derives a salt and verifier and hands both
	// (plus I) to the server. The password itself never leaves the client.
	verifier, err := client.Enroll(I, P)
	if err != nil {
		return fmt.Errorf("enrollment: %w", err)
	}
	fmt.Printf("enroll: I=%s s=%s v=%s\n", I, verifier.Salt, verifier.Verifier)

	// Round 1: ephemeral exchange.
	clientEph, err := client.GenerateEphemeral()
	if err != nil {
		return fmt.Errorf("client ephemeral: %w", err)
	}
	serverEph, err := server.GenerateEphemeral(verifier.Verifier)
	if err != nil {
		return fmt.Errorf("server ephemeral: %w", err)
	}
	fmt.Printf("round1: A=%s\n", clientEph.Public)
	fmt.Printf("round1: B=%s\n", serverEph.Public)

	// Round 2: the client recomputes x from the salt it received back
	// from the server at login time, derives K and M1, and sends M1.
	x, err := client.DerivePrivateKey(verifier.Salt, I, P)
	if err != nil {
		return fmt.Errorf("derive private key: %w", err)
	}
	clientSession, err := client.DeriveSession(clientEph.Secret, serverEph.Public, verifier.Salt, I, x)
	if err != nil {
		return fmt.Errorf("client session: %w", err)
	}
	fmt.Printf("round2: M1=%s\n", clientSession.Proof)

	// Round 3: the server verifies M1, derives its own K and M2, and
	// sends M2 back.
	serverSession, err := server.DeriveSession(serverEph.Secret, clientEph.Public, verifier.Salt, I, verifier.Verifier, clientSession.Proof)
	if err != nil {
		return fmt.Errorf("server session: %w", err)
	}
	fmt.Printf("round3: M2=%s\n", serverSession.Proof)

	if err := client.VerifySession(clientEph.Public, clientSession, serverSession.Proof); err != nil {
		return fmt.Errorf("client verify: %w", err)
	}

	if !clientSession.Key.Equals(serverSession.Key) {
		return fmt.Errorf("session keys diverged")
	}
	fmt.Printf("shared key K=%s\n", clientSession.Key)
	fmt.Println("mutual authentication succeeded")
	return nil
}

func loadParams(path string) (*srp.SrpParameters, error) {
	if path == "" {
		return srp.DefaultParameters(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return srp.LoadParameters(f)
}
