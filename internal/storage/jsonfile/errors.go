package jsonfile

import (
	"fmt"

	"github.com/famfin/fintrack/internal/models"
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", models.ErrStorage, op, err)
}
