package snapshot

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks snapshot data rejected at ingestion.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// Validate checks required fields and ranges of every record, and that every
// metric record references a company in the snapshot.
func Validate(snap Snapshot) error {
	if err := validate.Struct(snap); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q (%d violations)", ErrInvalidInput, fe.Namespace(), fe.Tag(), len(fieldErrs))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	known := make(map[string]struct{}, len(snap.Companies))
	for _, c := range snap.Companies {
		known[c.ID] = struct{}{}
	}
	for i, r := range snap.Metrics {
		if _, ok := known[r.CompanyID]; !ok {
			return fmt.Errorf("%w: metric %d references unknown company %q", ErrInvalidInput, i, r.CompanyID)
		}
	}
	return nil
}
