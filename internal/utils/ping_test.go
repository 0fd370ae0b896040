package utils_test

import (
	"net"
	"testing"
	"time"

	"github.com/localnerve/rentdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingHost(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	assert.NoError(t, utils.PingHost(host, port, time.Second))

	require.NoError(t, ln.Close())
	assert.Error(t, utils.PingHost(host, port, 200*time.Millisecond))
}
