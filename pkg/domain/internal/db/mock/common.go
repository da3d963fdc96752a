package mocks

// CallLog records arguments of calls to a mocked method, in order.
type CallLog[T any] []T

// Times is how many times the method has been called.
func (l CallLog[T]) Times() uint {
	return uint(len(l))
}
