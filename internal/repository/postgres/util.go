package postgres

import "errors"

var ErrMalformedRow = errors.New("malformed row")
