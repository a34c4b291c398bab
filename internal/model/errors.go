package model

import "errors"

var ErrUnknownMode = errors.New("unknown output mode")
