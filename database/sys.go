package database

import (
	"chaindict/config"
	"chaindict/interface/redis"
	"chaindict/redis/protocol"
)

func execPing(_ *DB, args [][]byte) redis.Reply {
	if len(args) == 0 {
		return protocol.PongReply()
	}
	return protocol.StatusReply(string(args[0]))
}

// Auth 记录客户端提交的密码，之后的命令都按该密码鉴权
func Auth(conn redis.Connection, args [][]byte) redis.Reply {
	if len(args) != 1 {
		return protocol.ArgNumErrorReply("auth")
	}
	if config.Properties.RequirePass == "" {
		return protocol.NewErrorReply("ERR Client sent AUTH, but no password is set")
	}
	password := string(args[0])
	conn.SetPassword(password)
	if config.Properties.RequirePass != password {
		return protocol.NewErrorReply("ERR invalid password")
	}
	return protocol.OkReply()
}

func authenticated(conn redis.Connection) bool {
	if config.Properties.RequirePass == "" {
		return true
	}
	return conn.GetPassword() == config.Properties.RequirePass
}

func init() {
	RegisterCommand("ping", execPing, -1)
}
