package cmd

import "errors"

// ErrNoContent is returned when a page yields no content block.
var ErrNoContent = errors.New("no wiki content")
