package runtime

import (
	"crypto/ed25519"

	"github.com/reflectoken/rtk/common"
)

// AddressFromPubKey derives the account address for an ed25519 public key.
func AddressFromPubKey(pubKey ed25519.PublicKey) string {
	return common.EncodeBytesToBase58(pubKey)
}

// VerifySenderSignature checks that sig is pubKey's ed25519 signature over
// the instruction bytes and that pubKey actually controls senderAddr. This is
// what earns a sender handle its is_signer attestation.
func VerifySenderSignature(senderAddr string, pubKey ed25519.PublicKey, instructionData, sig []byte) bool {
	if len(pubKey) != ed25519.PublicKeySize {
		return false
	}
	if AddressFromPubKey(pubKey) != senderAddr {
		return false
	}
	return ed25519.Verify(pubKey, instructionData, sig)
}
