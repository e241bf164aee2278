package reflection

import "errors"

var ErrEmptyAnswer = errors.New("reflection answer is required")
