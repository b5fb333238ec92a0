package httpclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClientDefaults(t *testing.T) {
	instance, err := createClient(context.Background(), nil)
	require.NoError(t, err)

	client, ok := instance.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, defaultTimeout, client.Timeout)
}

func TestCreateClientParsesTimeout(t *testing.T) {
	instance, err := createClient(context.Background(), map[string]string{"timeout": "5s"})
	require.NoError(t, err)

	client := instance.(*http.Client)
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestCreateClientRejectsBadTimeout(t *testing.T) {
	_, err := createClient(context.Background(), map[string]string{"timeout": "soon"})
	assert.Error(t, err)
}

func TestDestroyClient(t *testing.T) {
	client := &http.Client{}
	assert.NoError(t, destroyClient(client))
}

func TestDestroyClientWrongType(t *testing.T) {
	err := destroyClient("not a client")
	assert.Error(t, err)
}
