package pricing

import "errors"

var (
	ErrItemNotFound        = errors.New("pricing: item not found")
	ErrTierNotFound        = errors.New("pricing: price tier not found")
	ErrUpstreamUnavailable = errors.New("pricing: campaign store unavailable and cache too stale")
)
