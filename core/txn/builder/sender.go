package builder

import (
	"github.com/ltonetwork/lto/core/txn/signing"
)

// SenderOf returns the public key of the sender of the transaction. A
// completion input that carries a sender keeps it, otherwise the sender is
// the first signer.
func SenderOf(pairs []signing.Pair, in Input) ([]byte, error) {
	completion, ok := in.(Completion)
	if ok && len(completion.SenderPublicKey) > 0 {
		return append([]byte{}, completion.SenderPublicKey...), nil
	}

	if len(pairs) == 0 {
		return nil, ErrMissingSenderIdentity
	}

	key, err := pairs[0].Signer.GetPublicKey().MarshalBinary()
	if err != nil {
		return nil, &SigningError{
			Index: pairs[0].Index,
			Err:   err,
		}
	}

	return key, nil
}
