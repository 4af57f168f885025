package db

import "github.com/cockroachdb/errors"

var errDBUnavailable = errors.New("db unavailable")

func copyBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
