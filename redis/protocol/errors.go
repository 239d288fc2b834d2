package protocol

import (
	"chaindict/interface/redis"
)

type standardErrorReply struct {
	info string
}

func (r *standardErrorReply) GetBytes() []byte {
	return []byte("-" + r.info + crlf)
}

func (r *standardErrorReply) Error() string {
	return r.info
}

// NewErrorReply 的 info 不含开头的 '-'，例如 "ERR no such key"
func NewErrorReply(info string) redis.ErrorReply {
	return &standardErrorReply{info: info}
}

func UnknownErrorReply() redis.ErrorReply {
	return NewErrorReply("ERR unknown")
}

func SyntaxErrorReply() redis.ErrorReply {
	return NewErrorReply("ERR syntax error")
}

func WrongTypeErrorReply() redis.ErrorReply {
	return NewErrorReply("WRONGTYPE Operation against a key holding the wrong kind of value")
}

func ArgNumErrorReply(cmd string) redis.ErrorReply {
	return NewErrorReply("ERR wrong number of arguments for '" + cmd + "' command")
}

func IsErrorReply(r redis.Reply) bool {
	b := r.GetBytes()
	return len(b) > 0 && b[0] == '-'
}
