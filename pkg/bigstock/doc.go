// Package bigstock provides types, interfaces, and helpers for working with the
// Bigstock OAuth2 API.
//
// # Overview
//
// The bigstock package defines the Client interface, its Config, the Response
// returned by every call, and the error taxonomy shared by all implementations.
// A concrete implementation is provided by the bsclient package, which wires
// configuration, transport, and authentication. Most consumers should import
// bsclient to construct a client and then use the Client interface exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/bigstock/pkg/bigstock"
//	  "github.com/fivetwenty-io/bigstock/pkg/bsclient"
//	)
//
//	func example() {
//	  cli, err := bsclient.NewWithClientCredentials(bigstock.Development, "client-id", "client-secret")
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.Request(context.Background(), "search", bigstock.Params{"q": "upper peninsula"})
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Data
//	}
//
// # Authentication
//
// A client authenticates either with a bearer token (SetToken) or with client
// credentials (SetClientCredentials). With credentials only, the first request
// exchanges them for a token at the "token" endpoint using the OAuth2 client
// credentials grant; the token is then reused for every later call.
//
// # Errors
//
// Failures are reported as *AuthenticationError (missing token or credentials),
// *TransportError (the HTTP exchange itself failed), or *ProtocolError (the API
// answered with something that could not be used). IsAuthenticationError,
// IsTransportError, and IsProtocolError branch on them.
package bigstock
