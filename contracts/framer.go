package contracts

import "image"

// Framer turns one decoded image into one framed image.
type Framer interface {
	Frame(img image.Image) (*FrameResult, error)
}

// FrameResult is the framed image plus what happened to it.
type FrameResult struct {
	Image   image.Image
	Summary string // short human-readable description of what was done
	Warning error  // non-fatal condition, the image is still usable
}
