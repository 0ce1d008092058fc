package service

// OrderNumberGenerator produces candidate order numbers. Uniqueness is checked by the caller.
type OrderNumberGenerator interface {
	Next() string
}
