package signing

import (
	"github.com/ltonetwork/lto/crypto"
	"github.com/ltonetwork/lto/crypto/ed25519"
	"golang.org/x/xerrors"
)

// SignerFactory returns the signer of a seed phrase.
type SignerFactory func(seed string) (crypto.Signer, error)

// Parser turns loosely typed signing keys, such as the seed phrases read from
// a command line, into a specification.
type Parser struct {
	factory SignerFactory
}

// NewParser returns a parser that derives the signers of the seeds with
// Ed25519.
func NewParser() Parser {
	return NewParserWithFactory(func(seed string) (crypto.Signer, error) {
		return ed25519.NewSignerFromSeed(seed), nil
	})
}

// NewParserWithFactory returns a parser that uses the factory to derive the
// signers of the seeds.
func NewParserWithFactory(factory SignerFactory) Parser {
	return Parser{factory: factory}
}

// Parse returns the specification of the value. It accepts a seed phrase or a
// signer for the slot 0, a list of seeds, signers or both where an empty seed
// or a nil is an absent signer, or pairs with explicit slots.
func (p Parser) Parse(v interface{}) (Spec, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case Spec:
		return v, nil
	case string:
		signer, err := p.signer(v)
		if err != nil {
			return nil, err
		}

		return Single{Signer: signer}, nil
	case crypto.Signer:
		return Single{Signer: v}, nil
	case Pair:
		return Explicit{v}, nil
	case []Pair:
		return Explicit(v), nil
	case []crypto.Signer:
		return Sequence(v), nil
	case []string:
		seq := make(Sequence, len(v))
		for i, seed := range v {
			if seed == "" {
				continue
			}

			signer, err := p.signer(seed)
			if err != nil {
				return nil, xerrors.Errorf("seed %d: %v", i, err)
			}

			seq[i] = signer
		}

		return seq, nil
	case []interface{}:
		seq := make(Sequence, len(v))
		for i, elem := range v {
			signer, err := p.parseElement(elem)
			if err != nil {
				return nil, xerrors.Errorf("element %d: %w", i, err)
			}

			seq[i] = signer
		}

		return seq, nil
	default:
		return nil, xerrors.Errorf("unsupported type '%T': %w", v, ErrInvalidSigningKeySpec)
	}
}

func (p Parser) parseElement(elem interface{}) (crypto.Signer, error) {
	switch e := elem.(type) {
	case nil:
		return nil, nil
	case string:
		if e == "" {
			return nil, nil
		}

		return p.signer(e)
	case crypto.Signer:
		return e, nil
	default:
		return nil, xerrors.Errorf("unsupported type '%T': %w", elem, ErrInvalidSigningKeySpec)
	}
}

func (p Parser) signer(seed string) (crypto.Signer, error) {
	signer, err := p.factory(seed)
	if err != nil {
		return nil, xerrors.Errorf("couldn't derive signer: %v", err)
	}

	return signer, nil
}
