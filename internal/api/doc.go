// Package api exposes the marketplace core over HTTP.
//
// Routes
//
//	POST /register
//	    JSON Registration body. 201 on success.
//
//	POST /login
//	    JSON {"email", "password"}. 200 when the pair is valid. No session or
//	    token is issued.
//
//	GET /listings
//	    All listings in publication order.
//
//	POST /listings
//	    multipart/form-data with the listing fields (JSON names) and zero or
//	    more "images" file parts. Non-image parts are dropped before the core
//	    sees them. 201 with the stored listing.
//
//	GET /uploads/{name}
//	    Raw bytes of a stored upload.
//
// Failures carry a JSON body {"error": <reason>, "field": ..., "message": ...}
// where reason is one of the domain error codes (MissingFields, EmailTaken,
// UserNotFound, ...). Validation failures are 422 (409 for EmailTaken),
// authentication failures 401.
package api
