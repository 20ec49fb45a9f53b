package program

// Rent is the program's view of the host environment's rent parameters. A
// storage account must hold at least the rent-exempt minimum for its data
// footprint before the program writes a ledger record into it.
type Rent struct {
	// LamportsPerByteYear is the rent rate per byte of account data per year.
	LamportsPerByteYear uint64 `ini:"lamports_per_byte_year"`
	// ExemptionThresholdYears is how many years of rent an account must hold
	// up front to be exempt.
	ExemptionThresholdYears float64 `ini:"exemption_threshold_years"`
	// AccountStorageOverhead is the flat per-account byte overhead charged on
	// top of the data footprint.
	AccountStorageOverhead uint64 `ini:"account_storage_overhead"`
}

// DefaultRent mirrors the well-known mainnet parameters.
var DefaultRent = Rent{
	LamportsPerByteYear:     3480,
	ExemptionThresholdYears: 2.0,
	AccountStorageOverhead:  128,
}

// MinimumBalance returns the rent-exempt minimum for an account with dataLen
// bytes of data.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	chargeable := uint64(dataLen) + r.AccountStorageOverhead
	return uint64(float64(chargeable*r.LamportsPerByteYear) * r.ExemptionThresholdYears)
}
