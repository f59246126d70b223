package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIType(t *testing.T) {
	tests := []struct {
		label string
		want  APIType
	}{
		{"azure", APITypeAzure},
		{"AZURE", APITypeAzure},
		{"azure_ad", APITypeAzureAD},
		{"azuread", APITypeAzureAD},
		{"open_ai", APITypeOpenAI},
		{"apacai", APITypeOpenAI},
		{"", APITypeUnset},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseAPIType(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAPIType("bogus")
	assert.ErrorIs(t, err, ErrInvalidAPIType)
}

func TestAPITypeAuthHeader(t *testing.T) {
	name, value := APITypeOpenAI.AuthHeader("sk-1")
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer sk-1", value)

	name, value = APITypeAzureAD.AuthHeader("tok")
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer tok", value)

	name, value = APITypeAzure.AuthHeader("k")
	assert.Equal(t, "api-key", name)
	assert.Equal(t, "k", value)
}

func TestAPITypeText(t *testing.T) {
	var at APIType
	require.NoError(t, at.UnmarshalText([]byte("azure_ad")))
	assert.Equal(t, APITypeAzureAD, at)

	b, err := at.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "azure_ad", string(b))

	assert.Error(t, at.UnmarshalText([]byte("nope")))
	assert.Equal(t, APITypeAzure, APITypeUnset.Or(APITypeAzure))
	assert.Equal(t, APITypeOpenAI, APITypeOpenAI.Or(APITypeAzure))
	assert.True(t, APITypeAzure.IsAzure())
	assert.False(t, APITypeOpenAI.IsAzure())
}
