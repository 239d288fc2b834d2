package database

import (
	"chaindict/config"
	"chaindict/interface/redis"
	"chaindict/lib/logger"
	"chaindict/lib/sync/atomic"
	"chaindict/redis/protocol"
	"errors"
	"fmt"
	"io/fs"
	"runtime/debug"
	"strconv"
)

const defaultRDBFilename = "dump.rdb"

// Server 持有全部 DB，负责连接级别的命令并把其余命令转发给当前选中的 DB
type Server struct {
	dbs    []*DB
	saving atomic.Boolean
}

// NewServer 按 config.Properties 创建 Server，配置了 dbfilename 且文件存在时从中恢复数据
func NewServer() *Server {
	count := config.Properties.Databases
	if count <= 0 {
		count = 16
	}
	server := &Server{
		dbs: make([]*DB, count),
	}
	for i := range server.dbs {
		server.dbs[i] = newDB(i)
	}
	if filename := config.Properties.RDBFilename; filename != "" {
		err := server.loadRDB(filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Errorf("load rdb file %s failed: %v", filename, err)
		}
	}
	return server
}

// Execute 执行一条命令，命令执行中的 panic 会被转换为错误回复
func (server *Server) Execute(conn redis.Connection, line redis.Line) (reply redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Warnf("error occurs: %v\n%s", err, string(debug.Stack()))
			reply = protocol.UnknownErrorReply()
		}
	}()
	if len(line) == 0 {
		return protocol.NewErrorReply("ERR empty command")
	}
	cmdName := string(line.CommandName())
	content := line.CommandContent()
	if cmdName == "auth" {
		return Auth(conn, content)
	}
	if !authenticated(conn) {
		return protocol.NewErrorReply("NOAUTH Authentication required")
	}
	switch cmdName {
	case "select":
		if len(line) != 2 {
			return protocol.ArgNumErrorReply(cmdName)
		}
		return server.execSelect(conn, content)
	case "flushall":
		return server.flushAll()
	case "save":
		return server.save()
	case "bgsave":
		return server.bgSave()
	}
	db, errReply := server.dbAt(conn.GetDBIndex())
	if errReply != nil {
		return errReply
	}
	return db.Execute(line)
}

func (server *Server) AfterClientClose(_ redis.Connection) {
}

// Close 在配置了 dbfilename 时保存一次快照
func (server *Server) Close() {
	if config.Properties.RDBFilename == "" {
		return
	}
	if err := server.saveRDB(); err != nil {
		logger.Errorf("save rdb on close failed: %v", err)
	}
}

func (server *Server) dbAt(index int) (*DB, redis.ErrorReply) {
	if index < 0 || index >= len(server.dbs) {
		return nil, protocol.NewErrorReply("ERR DB index is out of range")
	}
	return server.dbs[index], nil
}

func (server *Server) execSelect(conn redis.Connection, args [][]byte) redis.Reply {
	index, err := strconv.Atoi(string(args[0]))
	if err != nil {
		return protocol.NewErrorReply("ERR invalid DB index")
	}
	if _, errReply := server.dbAt(index); errReply != nil {
		return errReply
	}
	conn.SelectDB(index)
	return protocol.OkReply()
}

func (server *Server) flushAll() redis.Reply {
	for _, db := range server.dbs {
		db.mu.Lock()
		db.flush()
		db.mu.Unlock()
	}
	return protocol.OkReply()
}

func (server *Server) save() redis.Reply {
	if err := server.saveRDB(); err != nil {
		logger.Errorf("save rdb failed: %v", err)
		return protocol.NewErrorReply(fmt.Sprintf("ERR %v", err))
	}
	return protocol.OkReply()
}

func (server *Server) bgSave() redis.Reply {
	if !server.saving.CompareAndSet(false, true) {
		return protocol.NewErrorReply("ERR Background save already in progress")
	}
	go func() {
		defer server.saving.Set(false)
		if err := server.saveRDB(); err != nil {
			logger.Errorf("background save failed: %v", err)
			return
		}
		logger.Info("background saving terminated with success")
	}()
	return protocol.StatusReply("Background saving started")
}
