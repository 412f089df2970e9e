// Package memory holds the in-memory repository implementations. State
// lives for the process lifetime only; there is no persistence.
package memory

import (
	"github.com/minibank/minibank/pkg/repository"
)

var (
	_ repository.AccountRepository = (*AccountRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
)
