//go:build !unix

package main

import (
	"errors"

	"github.com/hupe1980/hlfs/lowlevel"
)

func newUnixBackend(func(*lowlevel.Options)) (backend, error) {
	return nil, errors.New("unix backend is not available on this platform; use -backend os")
}
