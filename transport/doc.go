// Package transport performs the HTTP exchanges behind apacai objects.
//
// A Config describes the process level settings (key, base URL, variant, version,
// organization, retries). A Requestor turns a Call into a Result: a decoded Response
// envelope, or a lazy sequence of envelopes for server-sent event streams.
// HTTPRequestor is the default implementation, built on the openai-go client.
package transport
