package content

import "errors"

var (
	// ErrInvalidPage is wrapped by every validation failure of a page file.
	ErrInvalidPage = errors.New("content: invalid page")
	// ErrUnknownKind is wrapped when a block names a kind the viewer cannot build.
	ErrUnknownKind = errors.New("content: unknown block kind")
)
