package repository

import (
	"errors"
	"fmt"
)

var (
	ErrStoreRead  = errors.New("store read failed")
	ErrStoreWrite = errors.New("store write failed")
)

func readError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreRead, err)
}

func writeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreWrite, err)
}
