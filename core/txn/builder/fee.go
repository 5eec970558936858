package builder

// Fee returns the fee of a transaction. A fee set in the header is used as is,
// otherwise it is the base fee of the kind increased by the additional fee.
func Fee(h Header, baseFee uint64) uint64 {
	if h.Fee != 0 {
		return h.Fee
	}

	return baseFee + h.AdditionalFee
}
