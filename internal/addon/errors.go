package addon

import "errors"

var (
	// ErrMalformedIdentifier is returned when a token does not have the
	// prefix, length or character set of an identifier.
	ErrMalformedIdentifier = errors.New("malformed identifier")

	// ErrFieldOverflow is returned when a value does not fit its identifier field.
	ErrFieldOverflow = errors.New("identifier field overflow")

	// ErrUnknownTitle is returned when no title matches the decoded title id.
	ErrUnknownTitle = errors.New("unknown title")

	// ErrUnknownEpisode is returned when a series has no episode at the
	// decoded season and episode.
	ErrUnknownEpisode = errors.New("unknown episode")

	// ErrUnknownResource is returned for a resource kind outside catalog, meta and stream.
	ErrUnknownResource = errors.New("unknown resource")
)
