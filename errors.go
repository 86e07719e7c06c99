package inpaint

import "errors"

// Sentinel error kinds returned by the inpainting driver. Callers should
// compare against these with errors.Is; the concrete error returned may
// wrap additional context.
var (
	// ErrInvalidConfiguration is returned when the patch radius, candidate
	// count, or image/mask dimensions are not usable.
	ErrInvalidConfiguration = errors.New("inpaint: invalid configuration")

	// ErrInsufficientSources is returned when fewer than K fully-valid
	// source patches exist anywhere in the image.
	ErrInsufficientSources = errors.New("inpaint: insufficient source patches")

	// ErrNoAdmissibleCandidate is returned when the refiner rejects every
	// one of the K candidates for a given target.
	ErrNoAdmissibleCandidate = errors.New("inpaint: no admissible candidate")

	// ErrNoProgress is returned when an iteration completes without
	// painting any pixel.
	ErrNoProgress = errors.New("inpaint: no progress")

	// ErrCancelled is returned when the caller's context is done.
	ErrCancelled = errors.New("inpaint: cancelled")
)
