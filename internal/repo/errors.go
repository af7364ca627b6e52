package repo

import "errors"

var ErrPostNotFound = errors.New("post not found")
