/*
Package apacai is the client core for the APACAI inference API.

Responses are decoded into dynamic objects that keep the key order of the JSON
they came from. Each object carries the identity it was fetched with (API key,
version, variant, organization, engine) so it can issue follow-up requests on
its own behalf.

# Objects

An Object is an ordered, string keyed container:

	o, err := apacai.New("file-abc", apacai.APIKey(key))
	if err := o.Set("purpose", "fine-tune"); err != nil {
		// setting "" is rejected, use nil or Unset instead
	}
	fmt.Println(o) // indented JSON, keys in insertion order

Specialized variants (File, FineTune, Model, Deployment, EngineObject,
CompletionConfig) embed *Object and add typed accessors. Materialize picks the
variant from the "object" field of a response:

	r := apacai.Materialize(data, apacai.Identity{APIKey: key})
	if f, ok := r.(*apacai.File); ok {
		fmt.Println(f.Filename(), f.CreatedAt())
	}

# Requests

Issue sends a request with the object's identity layered over the process
configuration and materializes the response. Streamed responses are exposed as
an iterator that decodes one chunk per step:

	out, err := o.Issue(ctx, apacai.Request{Method: http.MethodPost, Path: "/completions", Params: params, Stream: true})
	for chunk, err := range out.Stream {
		...
	}

IssueAsync runs the same request in the background and returns a Future.

# Snapshots

Dump and Load write and restore a durable JSON snapshot of an object, identity
included. Stored empty strings survive the round trip.
*/
package apacai
