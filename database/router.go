package database

import (
	"chaindict/interface/redis"
	"strings"
)

var (
	cmdMap = make(map[string]*command)
)

// ExecFunc 执行一条命令，args 不含命令名，调用时已持有 DB 的锁
type ExecFunc func(db *DB, args [][]byte) redis.Reply

type command struct {
	executor ExecFunc
	arity    int
}

// RegisterCommand 注册命令
// arity 包含命令名本身，为负数时表示参数个数至少为 -arity
func RegisterCommand(name string, executor ExecFunc, arity int) {
	name = strings.ToLower(name)
	cmdMap[name] = &command{
		executor: executor,
		arity:    arity,
	}
}

func invalidArity(line redis.Line, cmd *command) bool {
	n, arity := len(line), cmd.arity
	if arity >= 0 {
		return n != arity
	}
	return n < -arity
}
