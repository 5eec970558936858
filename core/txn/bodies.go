package txn

// Transfer sends an amount of the native token, or of an asset, to a
// recipient.
type Transfer struct {
	Recipient  string `json:"recipient"`
	Amount     uint64 `json:"amount"`
	AssetID    Base58 `json:"assetId,omitempty"`
	Attachment Base58 `json:"attachment"`
}

// Type implements txn.Body.
func (b Transfer) Type() Type { return TypeTransfer }

// Clone implements txn.Body.
func (b Transfer) Clone() Body {
	b.AssetID = cloneBytes(b.AssetID)
	b.Attachment = cloneBytes(b.Attachment)
	return b
}

func (Transfer) body() {}

// Issue creates a new asset owned by the sender.
type Issue struct {
	ChainID     byte   `json:"chainId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    uint64 `json:"quantity"`
	Decimals    byte   `json:"decimals"`
	Reissuable  bool   `json:"reissuable"`
	Script      Script `json:"script,omitempty"`
}

// Type implements txn.Body.
func (b Issue) Type() Type { return TypeIssue }

// Clone implements txn.Body.
func (b Issue) Clone() Body {
	b.Script = Script(cloneBytes(b.Script))
	return b
}

func (Issue) body() {}

// Reissue increases the supply of a reissuable asset.
type Reissue struct {
	ChainID    byte   `json:"chainId"`
	AssetID    Base58 `json:"assetId"`
	Quantity   uint64 `json:"quantity"`
	Reissuable bool   `json:"reissuable"`
}

// Type implements txn.Body.
func (b Reissue) Type() Type { return TypeReissue }

// Clone implements txn.Body.
func (b Reissue) Clone() Body {
	b.AssetID = cloneBytes(b.AssetID)
	return b
}

func (Reissue) body() {}

// Burn destroys a quantity of an asset.
type Burn struct {
	ChainID  byte   `json:"chainId"`
	AssetID  Base58 `json:"assetId"`
	Quantity uint64 `json:"quantity"`
}

// Type implements txn.Body.
func (b Burn) Type() Type { return TypeBurn }

// Clone implements txn.Body.
func (b Burn) Clone() Body {
	b.AssetID = cloneBytes(b.AssetID)
	return b
}

func (Burn) body() {}

// TransferEntry is a single recipient of a mass transfer.
type TransferEntry struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// MassTransfer sends amounts to several recipients at once.
type MassTransfer struct {
	AssetID    Base58          `json:"assetId,omitempty"`
	Transfers  []TransferEntry `json:"transfers"`
	Attachment Base58          `json:"attachment"`
}

// Type implements txn.Body.
func (b MassTransfer) Type() Type { return TypeMassTransfer }

// Clone implements txn.Body.
func (b MassTransfer) Clone() Body {
	b.AssetID = cloneBytes(b.AssetID)
	b.Attachment = cloneBytes(b.Attachment)

	if b.Transfers != nil {
		b.Transfers = append([]TransferEntry{}, b.Transfers...)
	}

	return b
}

func (MassTransfer) body() {}

// OrderType is the side of an order.
type OrderType string

const (
	// OrderBuy is a buy order of the amount asset.
	OrderBuy OrderType = "buy"
	// OrderSell is a sell order of the amount asset.
	OrderSell OrderType = "sell"
)

// AssetPair is the pair of assets of an order. An empty identifier is the
// native token.
type AssetPair struct {
	AmountAsset Base58 `json:"amountAsset"`
	PriceAsset  Base58 `json:"priceAsset"`
}

// Order is a matcher order. Its fee is the matcher fee.
type Order struct {
	MatcherPublicKey Base58    `json:"matcherPublicKey"`
	AssetPair        AssetPair `json:"assetPair"`
	OrderType        OrderType `json:"orderType"`
	Price            uint64    `json:"price"`
	Amount           uint64    `json:"amount"`
	// Expiration is in milliseconds since the epoch.
	Expiration int64 `json:"expiration"`
}

// Type implements txn.Body.
func (b Order) Type() Type { return TypeOrder }

// Clone implements txn.Body.
func (b Order) Clone() Body {
	b.MatcherPublicKey = cloneBytes(b.MatcherPublicKey)
	b.AssetPair.AmountAsset = cloneBytes(b.AssetPair.AmountAsset)
	b.AssetPair.PriceAsset = cloneBytes(b.AssetPair.PriceAsset)
	return b
}

func (Order) body() {}

// CancelOrder asks the matcher to cancel an order of the sender.
type CancelOrder struct {
	OrderID Base58 `json:"orderId"`
}

// Type implements txn.Body.
func (b CancelOrder) Type() Type { return TypeCancelOrder }

// Clone implements txn.Body.
func (b CancelOrder) Clone() Body {
	b.OrderID = cloneBytes(b.OrderID)
	return b
}

func (CancelOrder) body() {}

// Exchange settles a buy and a sell order matched by the sender.
type Exchange struct {
	Order1         *Transaction
	Order2         *Transaction
	Price          uint64
	Amount         uint64
	BuyMatcherFee  uint64
	SellMatcherFee uint64
}

// Type implements txn.Body.
func (b Exchange) Type() Type { return TypeExchange }

// Clone implements txn.Body.
func (b Exchange) Clone() Body {
	if b.Order1 != nil {
		b.Order1 = b.Order1.Clone()
	}

	if b.Order2 != nil {
		b.Order2 = b.Order2.Clone()
	}

	return b
}

func (Exchange) body() {}

// Alias creates an alias for the address of the sender.
type Alias struct {
	ChainID byte   `json:"chainId"`
	Alias   string `json:"alias"`
}

// Type implements txn.Body.
func (b Alias) Type() Type { return TypeAlias }

// Clone implements txn.Body.
func (b Alias) Clone() Body { return b }

func (Alias) body() {}

// SetScript sets the script of the sender account. A nil script removes it.
type SetScript struct {
	ChainID byte   `json:"chainId"`
	Script  Script `json:"script"`
}

// Type implements txn.Body.
func (b SetScript) Type() Type { return TypeSetScript }

// Clone implements txn.Body.
func (b SetScript) Clone() Body {
	b.Script = Script(cloneBytes(b.Script))
	return b
}

func (SetScript) body() {}

func cloneBytes(data []byte) []byte {
	if data == nil {
		return nil
	}

	return append([]byte{}, data...)
}
