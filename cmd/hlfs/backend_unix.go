//go:build unix

package main

import "github.com/hupe1980/hlfs/lowlevel"

func newUnixBackend(llOpts func(*lowlevel.Options)) (backend, error) {
	return lowlevel.NewUnixFS(llOpts), nil
}
