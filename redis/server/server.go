package server

import (
	"chaindict/config"
	"chaindict/database"
	"chaindict/interface/dbinterface"
	"chaindict/lib/logger"
	"chaindict/lib/sync/atomic"
	"chaindict/redis/connection"
	"chaindict/redis/parser"
	"chaindict/redis/protocol"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	syncatomic "sync/atomic"
)

var (
	unknownErrReplyBytes = []byte("-ERR unknown\r\n")
	maxClientsReplyBytes = []byte("-ERR max number of clients reached\r\n")
	nullArgReplyBytes    = []byte("-ERR Protocol error: null bulk string in command\r\n")
)

// Handler 实现 tcp.Handler，把每个连接上解析出的命令交给 db 执行
type Handler struct {
	activeConn sync.Map
	connCount  int32
	db         dbinterface.DB
	closing    atomic.Boolean
}

// MakeHandler 创建使用默认 database.Server 的 Handler
func MakeHandler() *Handler {
	return NewHandler(database.NewServer())
}

func NewHandler(db dbinterface.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) closeClient(client *connection.ClientConn) {
	if _, loaded := h.activeConn.LoadAndDelete(client); loaded {
		syncatomic.AddInt32(&h.connCount, -1)
	}
	_ = client.Close()
	h.db.AfterClientClose(client)
}

func (h *Handler) Handle(_ context.Context, conn net.Conn) {
	if h.closing.Get() {
		_ = conn.Close()
		return
	}
	count := syncatomic.AddInt32(&h.connCount, 1)
	if limit := config.Properties.MaxClients; limit > 0 && int(count) > limit {
		syncatomic.AddInt32(&h.connCount, -1)
		_, _ = conn.Write(maxClientsReplyBytes)
		_ = conn.Close()
		return
	}
	client := connection.NewClientConn(conn)
	h.activeConn.Store(client, struct{}{})

	ch := parser.ParseStream(conn)
	for payload := range ch {
		if payload.Err != nil {
			if parser.IsProtocolError(payload.Err) {
				errReply := protocol.NewErrorReply(payload.Err.Error())
				if err := client.Write(errReply.GetBytes()); err != nil {
					h.closeClient(client)
					// parse0 只有在 ch 被读空后才会退出
					for range ch {
					}
					return
				}
				continue
			}
			if !isClosedError(payload.Err) {
				logger.Warnf("read from %s: %v", client.RemoteAddr(), payload.Err)
			}
			h.closeClient(client)
			logger.Infof("connection closed: %s", client.RemoteAddr())
			return
		}
		if payload.Data == nil {
			continue
		}
		line, ok := protocol.FetchMultiBulk(payload.Data)
		if !ok {
			logger.Errorf("require multi bulk protocol, got %q", payload.Data.GetBytes())
			continue
		}
		if len(line) == 0 {
			continue
		}
		if hasNullArg(line) {
			_ = client.Write(nullArgReplyBytes)
			continue
		}
		result := h.db.Execute(client, line)
		if result != nil {
			_ = client.Write(result.GetBytes())
		} else {
			_ = client.Write(unknownErrReplyBytes)
		}
	}
	h.closeClient(client)
}

// hasNullArg 判断命令中是否含有 $-1，命令参数不允许为 null
func hasNullArg(line [][]byte) bool {
	for _, arg := range line {
		if arg == nil {
			return true
		}
	}
	return false
}

func isClosedError(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) ||
		strings.Contains(err.Error(), "use of closed network connection")
}

// Close 拒绝新连接，关闭现有连接后关闭 db
func (h *Handler) Close() error {
	logger.Info("handler shutting down...")
	h.closing.Set(true)
	h.activeConn.Range(func(key, _ any) bool {
		client := key.(*connection.ClientConn)
		_ = client.Close()
		return true
	})
	h.db.Close()
	return nil
}
