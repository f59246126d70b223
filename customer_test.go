package apacai

import (
	"context"
	"net/http"
	"testing"

	"github.com/casualjim/apacai/internal/mocks"
	"github.com/casualjim/apacai/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerURL(t *testing.T) {
	assert.Equal(t, "/customer/acme/score", CustomerURL("acme", "score"))
	assert.Equal(t, "/customer/a%2Fb/score", CustomerURL("a/b", "score"))
}

func TestCreateCustomer(t *testing.T) {
	req := mocks.NewRequestor(t)
	configs := useRequestor(t, req)

	req.EXPECT().Request(mock.Anything, mock.MatchedBy(func(call transport.Call) bool {
		input, _ := call.Params.Get("input")
		return call.Method == http.MethodPost && call.Path == "/customer/acme/embeddings" && input == "hi"
	})).Return(transport.Result{Response: response(t, `{"object":"list","data":[]}`)}, nil).Twice()

	out, err := CreateCustomer(context.Background(), "acme", "embeddings", map[string]any{"input": "hi"}, APIKey("sk-cust"))
	require.NoError(t, err)
	r, ok := out.Resource()
	require.True(t, ok)
	assert.Equal(t, "list", r.Base().stringField("object"))

	f := CreateCustomerAsync(context.Background(), "acme", "embeddings", map[string]any{"input": "hi"}, APIKey("sk-cust"))
	_, err = f.Get(context.Background())
	require.NoError(t, err)

	require.Len(t, *configs, 2)
	assert.Equal(t, "sk-cust", (*configs)[0].APIKey)
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(Organization("org-c"))
	require.NoError(t, err)
	assert.Equal(t, KindCustomer, c.Kind())
	assert.Equal(t, "org-c", c.Organization())

	_, err = NewCustomer(ResponseMS("slow"))
	assert.ErrorIs(t, err, ErrInvalidResponseMS)

	f := CreateCustomerAsync(context.Background(), "acme", "x", nil, ResponseMS("slow"))
	_, err = f.Get(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponseMS)
}
