// Package srp implements SRP-6a per RFC 5054: a password-authenticated
// key exchange that lets a client and server holding only a shared
// salted password verifier mutually authenticate and derive a shared
// strong session key, without the password (or anything
// password-equivalent) ever crossing the wire, and without a PKI.
//
// Four layers, bottom-up:
//
//	SrpInteger    fixed-width nonnegative integer carrying its own hex width
//	SrpHash       adapts a crypto.Hash to SRP's "hash mixed-typed values" idiom
//	SrpParameters immutable negotiated (N, g, k, H) context
//	SrpClient/SrpServer  the two endpoint state machines
//
// A session runs in three rounds:
//
//	enrollment:  client -> (salt s, verifier v, I)       -> server stores (s, v, I)
//	round 1:     client -> A                             -> server; server -> B -> client
//	round 2:     client derives K, M1; sends M1          -> server; server verifies M1
//	round 3:     server derives K, M2; sends M2          -> client; client verifies M2
//
// Every operation here is pure: it takes the values it needs and returns
// new values. SrpParameters and SrpHash hold no mutable state and are
// safe to share across any number of concurrent sessions; SrpClient and
// SrpServer hold only an immutable reference to SrpParameters and are
// reentrant. Network transport, credential storage, account enrollment
// policy, and RNG plumbing beyond "supply cryptographically strong
// uniform bytes" are all the caller's concern — this package models only
// the cryptographic core.
//
//	params := srp.DefaultParameters() // 2048-bit RFC 5054 group, SHA-256
//	client := srp.NewSrpClient(params)
//	server := srp.NewSrpServer(params)
//
//	verifier, _ := client.Enroll("alice", "hunter2")
//	// server persists (I="alice", verifier.Salt, verifier.Verifier)
//
//	eph, _ := client.GenerateEphemeral()
//	serverEph, _ := server.GenerateEphemeral(verifier.Verifier)
//	x, _ := client.DerivePrivateKey(verifier.Salt, "alice", "hunter2")
//	clientSession, _ := client.DeriveSession(eph.Secret, serverEph.Public, verifier.Salt, "alice", x)
//	serverSession, _ := server.DeriveSession(serverEph.Secret, eph.Public, verifier.Salt, "alice", verifier.Verifier, clientSession.Proof)
//	_ = client.VerifySession(eph.Public, clientSession, serverSession.Proof)
//	// clientSession.Key == serverSession.Key
package srp
