package auth

// ExchangeState tracks one ExchangeAndPersist invocation:
//
//	START -> EXCHANGING -> EXCHANGE_FAILED
//	                    -> EXCHANGED -> PERSISTING -> PERSISTED
//	                                               -> PERSIST_FAILED
type ExchangeState int

const (
	StateStart ExchangeState = iota
	StateExchanging
	StateExchangeFailed
	StateExchanged
	StatePersisting
	StatePersisted
	StatePersistFailed
)

var exchangeStateNames = map[ExchangeState]string{
	StateStart:          "START",
	StateExchanging:     "EXCHANGING",
	StateExchangeFailed: "EXCHANGE_FAILED",
	StateExchanged:      "EXCHANGED",
	StatePersisting:     "PERSISTING",
	StatePersisted:      "PERSISTED",
	StatePersistFailed:  "PERSIST_FAILED",
}

func (s ExchangeState) String() string {
	if name, ok := exchangeStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Terminal reports whether no further transition can follow s.
func (s ExchangeState) Terminal() bool {
	return s == StateExchangeFailed || s == StatePersisted || s == StatePersistFailed
}
