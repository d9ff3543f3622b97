package dataset

import (
	"errors"
	"fmt"

	"github.com/coachvint-crypto/Football-Scouting-Dashboard/internal/model"
)

// ErrDataUnavailable means no dataset could be loaded at all.
var ErrDataUnavailable = errors.New("no data found")

// MissingFieldError is returned when an operation needs a column the dataset
// does not have.
type MissingFieldError struct {
	Field model.Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// IsMissingField reports whether err is a MissingFieldError and returns the field.
func IsMissingField(err error) (model.Field, bool) {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field, true
	}
	return "", false
}
