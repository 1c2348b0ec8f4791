package view

import "errors"

var ErrSessionNotFound = errors.New("view session not found")
