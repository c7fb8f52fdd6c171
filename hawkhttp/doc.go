// Package hawkhttp binds the hawk package to net/http.
//
// It provides client-side signing (via Transport) and server-side
// authentication (via Middleware).
//
// # Client
//
// Wrap a client's transport to sign every outgoing request:
//
//	transport, err := hawkhttp.NewTransport(nil, hawkhttp.TransportConfig{
//	    Credentials:      creds,
//	    HashPayload:      true,
//	    ValidateResponse: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := &http.Client{Transport: transport}
//
// # Server
//
// Wrap handlers to require authentication on every incoming request:
//
//	mw, err := hawkhttp.Middleware(hawkhttp.MiddlewareConfig{
//	    Lookup: func(r *http.Request, id string) (*hawk.Credentials, error) {
//	        return store.Credentials(id)
//	    },
//	    AllowBewit: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/api/", mw(apiHandler))
//
// Handlers reach the authenticated identity through AuthInfoFromContext
// and can sign their response with AuthInfo.SignResponse.
package hawkhttp
