//go:build linux

package cli

import "golang.org/x/sys/unix"

// dup2 uses dup3, which every Linux port has; arm64 lacks dup2.
func dup2(oldfd, newfd int) error { return unix.Dup3(oldfd, newfd, 0) }
