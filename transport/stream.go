package transport

import (
	"bytes"
	"errors"
	"iter"
	"net/http"

	"github.com/casualjim/apacai/pkg/jsonx"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/tidwall/gjson"
)

var doneMarker = []byte("[DONE]")

// DecodeStream turns a server-sent event response into a lazy sequence of envelopes.
//
// Events without data are skipped and a "[DONE]" event ends the stream. Nothing is
// read from the body until the sequence is pulled. The body is closed when the
// sequence ends, fails or the consumer stops early.
func DecodeStream(res *http.Response, template Response) iter.Seq2[*Response, error] {
	return func(yield func(*Response, error) bool) {
		decoder := ssestream.NewDecoder(res)
		if decoder == nil {
			yield(nil, errors.New("stream response has no body"))
			return
		}
		defer decoder.Close()

		for decoder.Next() {
			payload := bytes.TrimSpace(decoder.Event().Data)
			if len(payload) == 0 {
				continue
			}
			if bytes.Equal(payload, doneMarker) {
				return
			}

			if errMsg := gjson.GetBytes(payload, "error"); errMsg.IsObject() {
				yield(nil, &APIError{
					Message:   errMsg.Get("message").String(),
					RequestID: template.RequestID,
				})
				return
			}

			data, err := jsonx.Decode(payload)
			if err != nil {
				yield(nil, err)
				return
			}

			chunk := template
			chunk.Data = data
			if !yield(&chunk, nil) {
				return
			}
		}
		if err := decoder.Err(); err != nil {
			yield(nil, err)
		}
	}
}
