package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagCardNotFound marks a lookup that returned no card for a
	// sequential ID. Recoverable: the relay skips posting for that
	// reference only.
	ErrTagCardNotFound = goerr.NewTag("card_not_found")

	// ErrTagFavroAPI marks a transport or HTTP-level failure against the
	// Favro API.
	ErrTagFavroAPI = goerr.NewTag("favro_api")
)
