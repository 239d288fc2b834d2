package dbinterface

import (
	"chaindict/interface/redis"
)

// DB 是服务端执行命令的入口
type DB interface {
	Execute(conn redis.Connection, line redis.Line) redis.Reply
	AfterClientClose(conn redis.Connection)
	Close()
}
