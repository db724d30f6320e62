package models

// TokenRecord is the bookkeeping entry for the most recently issued token of
// one kind for one customer. It is not authoritative for token validity
// (signature and expiry are checked statelessly); it exists to support
// revocation on logout and reset completion.
type TokenRecord struct {
	CustomerEmail string
	Kind          string
	Token         string
}
