package services

import "errors"

var (
	ErrInvalidTotal    = errors.New("total must be greater than zero")
	ErrInvalidYesCount = errors.New("yesCount must be between zero and total")
)

// Score reports whether an assessment is flagged: at least half of the answers were yes.
func Score(yesCount, total int) (bool, error) {
	if total <= 0 {
		return false, ErrInvalidTotal
	}
	if yesCount < 0 || yesCount > total {
		return false, ErrInvalidYesCount
	}
	return yesCount*2 >= total, nil
}
