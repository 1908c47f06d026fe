// Package bsclient is the entry point for constructing a Bigstock OAuth2 API
// client that implements the bigstock.Client interface.
//
// Quick start
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
//	  ctx := context.Background()
//
//	  // Client credentials: the first request fetches a token.
//	  cli, err := bsclient.NewWithClientCredentials(bigstock.Development, "client-id", "client-secret")
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.Request(ctx, "search", bigstock.Params{"q": "upper peninsula"})
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Data
//	}
//
// # Configuration
//
// New accepts a full bigstock.Config, typically from bigstock.LoadConfig. A
// BaseURL without a scheme is treated as https.
//
// # TLS and development mode
//
// Config.InsecureSkipVerify is gated by the environment variable
// BIGSTOCK_DEV_MODE to avoid accidental insecure usage in production.
package bsclient
