package protocol

import (
	"chaindict/interface/redis"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplyBytes(t *testing.T) {
	cases := []struct {
		reply redis.Reply
		want  string
	}{
		{OkReply(), "+OK\r\n"},
		{PongReply(), "+PONG\r\n"},
		{StatusReply("QUEUED"), "+QUEUED\r\n"},
		{IntReply(-42), ":-42\r\n"},
		{BulkReply([]byte("a\r\nb")), "$4\r\na\r\nb\r\n"},
		{BulkReply(nil), "$0\r\n\r\n"},
		{NullBulkReply(), "$-1\r\n"},
		{MultiBulkReply([][]byte{[]byte("k"), nil}), "*2\r\n$1\r\nk\r\n$-1\r\n"},
		{EmptyMultiBulkReply(), "*0\r\n"},
		{MultiRawReply([]redis.Reply{IntReply(1), OkReply()}), "*2\r\n:1\r\n+OK\r\n"},
		{NewErrorReply("ERR boom"), "-ERR boom\r\n"},
		{ArgNumErrorReply("get"), "-ERR wrong number of arguments for 'get' command\r\n"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, string(c.reply.GetBytes()))
	}
}

func TestFetch(t *testing.T) {
	status, ok := FetchStatus(OkReply())
	require.True(t, ok)
	require.Equal(t, "OK", status)

	code, ok := FetchCode(IntReply(7))
	require.True(t, ok)
	require.Equal(t, int64(7), code)

	arg, ok := FetchBulk(NullBulkReply())
	require.True(t, ok)
	require.Nil(t, arg)

	_, ok = FetchMultiBulk(IntReply(1))
	require.False(t, ok)

	require.True(t, IsErrorReply(WrongTypeErrorReply()))
	require.False(t, IsErrorReply(OkReply()))
	require.True(t, IsOKReply(OkReply()))
}
