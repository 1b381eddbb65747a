package request

import "errors"

var ErrNotFound = errors.New("not found")
