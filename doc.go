// Package hawk implements the Hawk HTTP authentication scheme: HMAC
// signatures over a canonical description of a request, carried in the
// Authorization header, the Server-Authorization response header, or a
// "bewit" URL token.
//
// The package works on plain request descriptions and is independent of any
// HTTP stack; the hawkhttp subpackage binds it to net/http.
//
// # Signing a Request
//
// Describe the request, generate per-request state, and make the header:
//
//	key, err := hawk.NewKey(secret, hawk.SHA256, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	creds := &hawk.Credentials{ID: "dh37fgj492je", Key: key}
//
//	req, err := hawk.NewRequest(hawk.RequestConfig{
//	    Method: "GET",
//	    Host:   "example.com",
//	    Port:   443,
//	    Path:   "/resource/1?b=1&a=2",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	state, err := hawk.NewRequestState(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	header, err := req.MakeHeader(creds, state)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	httpReq.Header.Set("Authorization", "Hawk "+header.String())
//
// # Validating a Request
//
// The server parses the header, rebuilds the request description from its
// own view of the request, and validates:
//
//	header, err := hawk.ParseHeader(value)
//	if err != nil {
//	    // reject
//	}
//
//	if !req.ValidateHeader(header, key, time.Minute) {
//	    // reject
//	}
//
// The header's id attribute tells the server which key to look up.
// Validation checks the MAC, the payload hash binding, and the timestamp
// skew; nonce replay tracking is left to the caller.
//
// # Payload Hashes
//
// A request or response body is covered by hashing it with PayloadHasher
// (or the HashPayload convenience) and placing the digest in the
// RequestConfig or ResponseConfig Hash field. The hash is bound into the
// MAC, so a validated hash attribute proves the body was not altered.
//
// # Responses
//
// The Server-Authorization header binds a response to the request it
// answers by reusing the request's timestamp and nonce:
//
//	resp, err := hawk.NewResponse(req.ResponseConfig(state))
//	// server: header, err := resp.MakeHeader(key)
//	// client: ok := resp.ValidateHeader(header, key)
//
// # Bewits
//
// A bewit authorizes a single GET without headers, typically for handing
// out short-lived links:
//
//	bewit, err := req.MakeBewitWithTTL(creds, 10*time.Minute)
//	url := "https://example.com/resource/1?bewit=" + bewit.String()
//
// The server strips the token with ExtractBewit, rebuilds the request from
// the stripped path, and calls ValidateBewit.
//
// # Cryptographic Backends
//
// All primitives are reached through the Cryptographer interface. Passing
// nil wherever one is accepted selects DefaultCryptographer, backed by the
// standard library.
package hawk
