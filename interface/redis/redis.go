package redis

import (
	"bytes"
)

// Line 是一条已解析的命令，第一个元素为命令名
type Line [][]byte

// Reply 是对 RESP 协议中回复的消息的抽象
type Reply interface {
	GetBytes() []byte
}

// ErrorReply 是用于表示错误信息的 Reply
type ErrorReply interface {
	Reply
	Error() string
}

// Connection 是服务端视角的客户端连接
type Connection interface {
	Write([]byte) error
	SetPassword(string)
	GetPassword() string
	GetDBIndex() int
	SelectDB(int)
}

func (l Line) CommandName() []byte {
	return bytes.ToLower(l[0])
}

func (l Line) CommandContent() [][]byte {
	return l[1:]
}
