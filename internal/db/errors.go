package db

import "fmt"

// ConnectivityError wraps a transport or server failure talking to MongoDB.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("mongo %s: %s", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
