package tcp

import (
	"context"
	"net"
)

// Handler 处理 tcp 服务器接受的每一个连接
type Handler interface {
	// Handle 在独立的 goroutine 中被调用，返回时连接应已关闭
	Handle(ctx context.Context, conn net.Conn)
	Close() error
}
