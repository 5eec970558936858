package txn

import (
	"sort"
	"time"
)

const (
	defaultFee      uint64 = 100000000
	matcherFee      uint64 = 300000
	massTransferFee uint64 = 10000000

	// OrderLifetime is the default validity of an order after its timestamp.
	OrderLifetime = 29 * 24 * time.Hour
)

// Kind is the definition of a transaction kind: its code, the defaults
// applied by the assembler and its canonical layout.
type Kind struct {
	Type    Type
	Name    string
	Version byte
	// Broadcast is true when the kind is sent to a node, false for the
	// matcher messages that carry no type on the wire.
	Broadcast bool

	baseFee     func(Body) uint64
	defaults    func(Body, *Transaction) Body
	newBody     func() interface{}
	fingerprint func(*encoder, *Transaction)
}

// BaseFee returns the fee of the body when no fee is given by the caller.
func (k Kind) BaseFee(body Body) uint64 {
	if k.baseFee == nil {
		return 0
	}

	return k.baseFee(body)
}

// Defaults returns a copy of the body with the unset fields filled from the
// transaction header. The body is never modified.
func (k Kind) Defaults(body Body, tx *Transaction) Body {
	body = body.Clone()

	if k.defaults == nil {
		return body
	}

	return k.defaults(body, tx)
}

// New returns a pointer to an empty body of the kind, that can be populated
// by a decoder.
func (k Kind) New() interface{} {
	return k.newBody()
}

// kinds is filled at init as the layouts of the exchange refer back to the
// table through the orders.
var kinds map[Type]Kind

func init() {
	kinds = map[Type]Kind{
		TypeIssue: {
			Type:      TypeIssue,
			Name:      "issue",
			Version:   2,
			Broadcast: true,
			baseFee:   fixedFee(defaultFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Issue)
				body.ChainID = chainOrDefault(body.ChainID)
				return body
			},
			newBody: func() interface{} { return new(Issue) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Issue)

				e.header(tx, body.ChainID)
				e.short("name", []byte(body.Name))
				e.short("description", []byte(body.Description))
				e.uint64("quantity", body.Quantity)
				e.byte("decimals", body.Decimals)
				e.bool("reissuable", body.Reissuable)
				e.uint64("fee", tx.Fee)
				e.int64("timestamp", tx.Timestamp)
				e.optionalShort("script", body.Script)
			},
		},
		TypeTransfer: {
			Type:      TypeTransfer,
			Name:      "transfer",
			Version:   2,
			Broadcast: true,
			baseFee:   fixedFee(defaultFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Transfer)
				if body.Attachment == nil {
					body.Attachment = Base58{}
				}
				return body
			},
			newBody: func() interface{} { return new(Transfer) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Transfer)

				e.byte("type", byte(tx.Type))
				e.byte("version", tx.Version)
				e.publicKey("sender public key", tx.SenderPublicKey)
				e.optional("asset id", body.AssetID, AssetIDSize)
				e.int64("timestamp", tx.Timestamp)
				e.uint64("amount", body.Amount)
				e.uint64("fee", tx.Fee)
				e.recipient("recipient", body.Recipient)
				e.short("attachment", body.Attachment)
			},
		},
		TypeReissue: {
			Type:      TypeReissue,
			Name:      "reissue",
			Version:   2,
			Broadcast: true,
			baseFee:   fixedFee(defaultFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Reissue)
				body.ChainID = chainOrDefault(body.ChainID)
				return body
			},
			newBody: func() interface{} { return new(Reissue) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Reissue)

				e.header(tx, body.ChainID)
				e.fixed("asset id", body.AssetID, AssetIDSize)
				e.uint64("quantity", body.Quantity)
				e.bool("reissuable", body.Reissuable)
				e.uint64("fee", tx.Fee)
				e.int64("timestamp", tx.Timestamp)
			},
		},
		TypeBurn: {
			Type:      TypeBurn,
			Name:      "burn",
			Version:   2,
			Broadcast: true,
			baseFee:   fixedFee(defaultFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Burn)
				body.ChainID = chainOrDefault(body.ChainID)
				return body
			},
			newBody: func() interface{} { return new(Burn) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Burn)

				e.header(tx, body.ChainID)
				e.fixed("asset id", body.AssetID, AssetIDSize)
				e.uint64("quantity", body.Quantity)
				e.uint64("fee", tx.Fee)
				e.int64("timestamp", tx.Timestamp)
			},
		},
		TypeExchange: {
			Type:      TypeExchange,
			Name:      "exchange",
			Version:   2,
			Broadcast: true,
			baseFee:   fixedFee(matcherFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Exchange)
				if body.BuyMatcherFee == 0 && body.Order1 != nil {
					body.BuyMatcherFee = body.Order1.Fee
				}
				if body.SellMatcherFee == 0 && body.Order2 != nil {
					body.SellMatcherFee = body.Order2.Fee
				}
				return body
			},
			newBody: func() interface{} { return new(Exchange) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Exchange)

				e.byte("type", byte(tx.Type))
				e.byte("version", tx.Version)
				e.order("order 1", body.Order1)
				e.order("order 2", body.Order2)
				e.uint64("price", body.Price)
				e.uint64("amount", body.Amount)
				e.uint64("buy matcher fee", body.BuyMatcherFee)
				e.uint64("sell matcher fee", body.SellMatcherFee)
				e.uint64("fee", tx.Fee)
				e.int64("timestamp", tx.Timestamp)
			},
		},
		TypeAlias: {
			Type:      TypeAlias,
			Name:      "alias",
			Version:   2,
			Broadcast: true,
			baseFee:   fixedFee(defaultFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Alias)
				body.ChainID = chainOrDefault(body.ChainID)
				return body
			},
			newBody: func() interface{} { return new(Alias) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Alias)

				e.byte("type", byte(tx.Type))
				e.byte("version", tx.Version)
				e.publicKey("sender public key", tx.SenderPublicKey)
				e.count("alias", len(body.Alias)+4)
				e.alias("alias", body.ChainID, body.Alias)
				e.uint64("fee", tx.Fee)
				e.int64("timestamp", tx.Timestamp)
			},
		},
		TypeMassTransfer: {
			Type:      TypeMassTransfer,
			Name:      "mass-transfer",
			Version:   1,
			Broadcast: true,
			baseFee: func(b Body) uint64 {
				body := b.(MassTransfer)
				return defaultFee + uint64(len(body.Transfers))*massTransferFee
			},
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(MassTransfer)
				if body.Transfers == nil {
					body.Transfers = []TransferEntry{}
				}
				if body.Attachment == nil {
					body.Attachment = Base58{}
				}
				return body
			},
			newBody: func() interface{} { return new(MassTransfer) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(MassTransfer)

				e.byte("type", byte(tx.Type))
				e.byte("version", tx.Version)
				e.publicKey("sender public key", tx.SenderPublicKey)
				e.optional("asset id", body.AssetID, AssetIDSize)
				e.count("transfers", len(body.Transfers))
				for _, entry := range body.Transfers {
					e.recipient("transfer recipient", entry.Recipient)
					e.uint64("transfer amount", entry.Amount)
				}
				e.int64("timestamp", tx.Timestamp)
				e.uint64("fee", tx.Fee)
				e.short("attachment", body.Attachment)
			},
		},
		TypeSetScript: {
			Type:      TypeSetScript,
			Name:      "set-script",
			Version:   1,
			Broadcast: true,
			baseFee:   fixedFee(defaultFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(SetScript)
				body.ChainID = chainOrDefault(body.ChainID)
				return body
			},
			newBody: func() interface{} { return new(SetScript) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(SetScript)

				e.header(tx, body.ChainID)
				e.optionalShort("script", body.Script)
				e.uint64("fee", tx.Fee)
				e.int64("timestamp", tx.Timestamp)
			},
		},
		TypeOrder: {
			Type:    TypeOrder,
			Name:    "order",
			Version: 2,
			baseFee: fixedFee(matcherFee),
			defaults: func(b Body, tx *Transaction) Body {
				body := b.(Order)
				if body.Expiration == 0 {
					body.Expiration = tx.Timestamp + OrderLifetime.Milliseconds()
				}
				return body
			},
			newBody: func() interface{} { return new(Order) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(Order)

				e.byte("version", tx.Version)
				e.publicKey("sender public key", tx.SenderPublicKey)
				e.publicKey("matcher public key", body.MatcherPublicKey)
				e.optional("amount asset", body.AssetPair.AmountAsset, AssetIDSize)
				e.optional("price asset", body.AssetPair.PriceAsset, AssetIDSize)
				e.orderType("order type", body.OrderType)
				e.uint64("price", body.Price)
				e.uint64("amount", body.Amount)
				e.int64("timestamp", tx.Timestamp)
				e.int64("expiration", body.Expiration)
				e.uint64("matcher fee", tx.Fee)
			},
		},
		TypeCancelOrder: {
			Type:    TypeCancelOrder,
			Name:    "cancel-order",
			Version: 1,
			baseFee: fixedFee(0),
			newBody: func() interface{} { return new(CancelOrder) },
			fingerprint: func(e *encoder, tx *Transaction) {
				body := tx.Body.(CancelOrder)

				e.publicKey("sender public key", tx.SenderPublicKey)
				e.fixed("order id", body.OrderID, AssetIDSize)
			},
		},
	}
}

// KindOf returns the definition of the kind with the given type code.
func KindOf(t Type) (Kind, bool) {
	kind, found := kinds[t]
	return kind, found
}

// KindByName returns the definition of the kind with the given name, such as
// "transfer" or "mass-transfer".
func KindByName(name string) (Kind, bool) {
	for _, kind := range kinds {
		if kind.Name == name {
			return kind, true
		}
	}

	return Kind{}, false
}

// Kinds returns the definitions of every kind sorted by type code.
func Kinds() []Kind {
	list := make([]Kind, 0, len(kinds))
	for _, kind := range kinds {
		list = append(list, kind)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Type < list[j].Type
	})

	return list
}

func fixedFee(fee uint64) func(Body) uint64 {
	return func(Body) uint64 {
		return fee
	}
}

func chainOrDefault(chainID byte) byte {
	if chainID == 0 {
		return DefaultChainID
	}

	return chainID
}

// header writes the common prefix of the kinds bound to a chain.
func (e *encoder) header(tx *Transaction, chainID byte) {
	e.byte("type", byte(tx.Type))
	e.byte("version", tx.Version)
	e.byte("chain id", chainID)
	e.publicKey("sender public key", tx.SenderPublicKey)
}

func (e *encoder) orderType(field string, t OrderType) {
	switch t {
	case OrderBuy:
		e.byte(field, 0)
	case OrderSell:
		e.byte(field, 1)
	default:
		e.fail("invalid %s '%s'", field, t)
	}
}
