package socket

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tcpPair builds a connected loopback stream pair. The listener and both
// ends are closed when the test finishes.
func tcpPair(t *testing.T) (client, server Handle) {
	t.Helper()

	l, port, err := ListenTCP(0, "", 5, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(l) })

	client, err = ConnectTCP("localhost", port, "", nil)
	require.NoError(t, err)
	t.Cleanup(func() { Close(client) })

	var ok bool
	server, ok, err = PollAccept(l, 10*time.Second)
	require.NoError(t, err)
	require.True(t, ok, "accept did not complete within budget")
	t.Cleanup(func() { Close(server) })

	return client, server
}

func TestCloseInvalidHandle(t *testing.T) {
	// Defensive double-close of the sentinel must report the distinguished
	// status every time, never crash.
	for i := 0; i < 3; i++ {
		err := Close(InvalidHandle)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	}
}

func TestShutdownInvalidHandle(t *testing.T) {
	assert.ErrorIs(t, Shutdown(InvalidHandle), ErrInvalidHandle)
}

func TestPollAcceptInvalidHandle(t *testing.T) {
	_, _, err := PollAccept(InvalidHandle, 0)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestOpenCloseBothKinds(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"stream", Stream},
		{"datagram", Datagram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, port, err := Open(tt.kind, 0, "", false)
			require.NoError(t, err)
			require.NotEqual(t, InvalidHandle, s)
			assert.NotZero(t, port, "OS-chosen port should be reported back")
			assert.NoError(t, Close(s))
		})
	}
}

func TestOpenTCPAndUDPConvenience(t *testing.T) {
	s, port, err := OpenTCP(0, "", true)
	require.NoError(t, err)
	assert.NotZero(t, port)
	require.NoError(t, Close(s))

	s, port, err = OpenUDP(0, "", true)
	require.NoError(t, err)
	assert.NotZero(t, port)
	require.NoError(t, Close(s))
}

func TestOpenBindConflict(t *testing.T) {
	s1, port, err := OpenTCP(0, "localhost", false)
	require.NoError(t, err)
	defer Close(s1)

	_, _, err = OpenTCP(port, "localhost", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBind)
}

func TestResolutionFailure(t *testing.T) {
	_, _, err := Open(Stream, 0, "no.such.host.invalid", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResolution)

	_, err = ConnectTCP("no.such.host.invalid", 1, "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResolution)
}

func TestConnectRefused(t *testing.T) {
	// Grab a port that was live a moment ago and is now closed.
	l, port, err := ListenTCP(0, "localhost", 1, false, nil)
	require.NoError(t, err)
	require.NoError(t, Close(l))

	_, err = ConnectTCP("localhost", port, "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnect)
}

func TestPollAcceptPending(t *testing.T) {
	l, _, err := ListenTCP(0, "", 5, true, nil)
	require.NoError(t, err)
	defer Close(l)

	start := time.Now()
	h, ok, err := PollAccept(l, 100*time.Millisecond)
	require.NoError(t, err, "nobody connecting is not an error")
	assert.False(t, ok)
	assert.Equal(t, InvalidHandle, h)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWaitReadable(t *testing.T) {
	client, server := tcpPair(t)

	ready, err := WaitReadable(server, 0)
	require.NoError(t, err)
	assert.False(t, ready, "no data yet")

	_, err = WriteAll(client, []byte("ping"))
	require.NoError(t, err)

	ready, err = WaitReadable(server, 2*time.Second)
	require.NoError(t, err)
	assert.True(t, ready)

	_, err = WaitReadable(InvalidHandle, 0)
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestWaitReadableSubMillisecondTimeout(t *testing.T) {
	_, server := tcpPair(t)

	// A budget under one millisecond must still be slept out, not
	// truncated down to an instant zero-length poll.
	start := time.Now()
	ready, err := WaitReadable(server, 500*time.Microsecond)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.False(t, ready)
	assert.GreaterOrEqual(t, elapsed, 400*time.Microsecond)
	assert.Less(t, elapsed, time.Second)
}

func TestShutdownWakesReader(t *testing.T) {
	client, server := tcpPair(t)

	require.NoError(t, Shutdown(client))

	// Full-duplex shutdown makes the peer observe end-of-stream.
	buf := make([]byte, 4)
	_, err := ReadAll(server, buf)
	assert.ErrorIs(t, err, ErrRead)
}

func TestLocalIP(t *testing.T) {
	t.Run("nic override wins", func(t *testing.T) {
		ip, err := LocalIP("10.1.2.3", InvalidHandle)
		require.NoError(t, err)
		assert.Equal(t, "10.1.2.3", ip)
	})

	t.Run("bound handle reports its interface", func(t *testing.T) {
		s, _, err := OpenUDP(0, "localhost", false)
		require.NoError(t, err)
		defer Close(s)

		ip, err := LocalIP("", s)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", ip)
	})
}

func TestDiscoverLocalAddress(t *testing.T) {
	// A UDP association needs no listening peer, so localhost always works.
	addr, err := DiscoverLocalAddress("localhost")
	require.NoError(t, err)
	parsed := net.ParseIP(addr)
	require.NotNil(t, parsed, "expected dotted quad, got %q", addr)
	assert.NotNil(t, parsed.To4())
}

func TestRequestCallback(t *testing.T) {
	srv, port, err := OpenUDP(0, "localhost", false)
	require.NoError(t, err)
	defer Close(srv)

	cli, err := ConnectUDP("localhost", port, "")
	require.NoError(t, err)
	defer Close(cli)

	require.NoError(t, RequestCallback(cli, 4242, ""))

	buf := make([]byte, 64)
	n, err := ReadDeadline(srv, buf, time.Second)
	require.NoError(t, err)
	require.Greater(t, n, 0)

	msg := buf[:n]
	require.Equal(t, byte(0), msg[len(msg)-1], "rendezvous message is NUL-terminated")
	assert.Equal(t, "127.0.0.1 4242", string(msg[:len(msg)-1]))

	assert.ErrorIs(t, RequestCallback(InvalidHandle, 1, ""), ErrInvalidHandle)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Stream, "stream"},
		{Datagram, "datagram"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}
