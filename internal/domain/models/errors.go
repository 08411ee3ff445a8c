package models

import "errors"

var ErrEmptyPayload = errors.New("record has no payload")
