// Package transport submits capability payloads to hypermedia link targets.
//
// The Submitter interface is the only contract the dispatcher relies on; HTTP
// is the default implementation, posting JSON and treating any non-2xx status
// as a transport failure. Retries are not performed here. An OAuth2 token
// source can be attached so every submission carries a bearer token.
package transport
