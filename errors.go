package symjaweb

import "errors"

// Sentinel errors for envelope construction.
var (
	ErrGraphicRender     = errors.New("graphic rendering failed")
	ErrNoGraphicRenderer = errors.New("no graphic renderer configured")
)
