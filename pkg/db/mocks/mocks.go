// Package mocks provides hand-written test doubles for the db
// interfaces. Set the function you expect on Impl; calls are recorded
// in Calls; an unexpected call panics.
package mocks

type CallLog[T any] []T

func (c CallLog[T]) Times() int {
	return len(c)
}
