package client

import (
	"chaindict/interface/redis"
	"chaindict/lib/logger"
	"chaindict/lib/sync/wait"
	"chaindict/redis/parser"
	"chaindict/redis/protocol"
	"errors"
	"net"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	chanSize = 256
	timeout  = 3 * time.Second
)

const (
	created int32 = iota
	running
	closed
)

type request struct {
	line      redis.Line
	reply     redis.Reply
	heartbeat bool
	waiting   *wait.Wait
	err       error
}

// Client 是流水线式的客户端，请求按发送顺序与回复一一对应
type Client struct {
	addr        string
	conn        net.Conn
	pendingChan chan *request
	waitingChan chan *request
	ticker      *time.Ticker
	stopChan    chan struct{}
	status      int32
	working     *sync.WaitGroup
}

func NewClient(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		addr:        addr,
		conn:        conn,
		pendingChan: make(chan *request, chanSize),
		waitingChan: make(chan *request, chanSize),
		stopChan:    make(chan struct{}),
		working:     &sync.WaitGroup{},
	}, nil
}

func (c *Client) Start() {
	c.ticker = time.NewTicker(10 * time.Second)
	go c.handleWrite()
	go c.handleRead()
	go c.heartbeat()
	atomic.StoreInt32(&c.status, running)
}

// Close 等待已发出的请求结束后关闭连接
func (c *Client) Close() {
	if !atomic.CompareAndSwapInt32(&c.status, running, closed) {
		return
	}
	c.ticker.Stop()
	close(c.stopChan)
	c.working.Wait()
	close(c.pendingChan)
	_ = c.conn.Close()
}

func (c *Client) isRunning() bool {
	return atomic.LoadInt32(&c.status) == running
}

// Send 发送一条命令并等待回复，网络错误与超时以错误回复的形式返回
func (c *Client) Send(line redis.Line) redis.Reply {
	if !c.isRunning() {
		return protocol.NewErrorReply("client closed")
	}
	req := &request{
		line:    line,
		waiting: &wait.Wait{},
	}
	req.waiting.Add(1)
	c.working.Add(1)
	defer c.working.Done()
	c.pendingChan <- req
	if req.waiting.WaitWithTimeout(timeout) {
		return protocol.NewErrorReply("server time out")
	}
	if req.err != nil {
		return protocol.NewErrorReply("request failed: " + req.err.Error())
	}
	return req.reply
}

func (c *Client) handleWrite() {
	for req := range c.pendingChan {
		c.doRequest(req)
	}
}

func (c *Client) handleRead() {
	ch := parser.ParseStream(c.conn)
	for payload := range ch {
		if payload.Err != nil {
			if parser.IsProtocolError(payload.Err) {
				c.finishRequest(protocol.NewErrorReply(payload.Err.Error()))
				continue
			}
			if !c.isRunning() {
				return
			}
			c.reconnect()
			return
		}
		c.finishRequest(payload.Data)
	}
}

func (c *Client) heartbeat() {
	for {
		select {
		case <-c.ticker.C:
			c.doHeartbeat()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Client) doHeartbeat() {
	if !c.isRunning() {
		return
	}
	req := &request{
		line:      redis.Line{[]byte("PING")},
		heartbeat: true,
		waiting:   &wait.Wait{},
	}
	req.waiting.Add(1)
	c.working.Add(1)
	defer c.working.Done()
	c.pendingChan <- req
	req.waiting.WaitWithTimeout(timeout)
}

func (c *Client) doRequest(req *request) {
	if req == nil || len(req.line) == 0 {
		return
	}
	bytes := protocol.MultiBulkReply(req.line).GetBytes()
	var err error
	for i := 0; i < 3; i++ {
		_, err = c.conn.Write(bytes)
		if err == nil {
			break
		}
		errStr := err.Error()
		if !(strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")) {
			break
		}
	}
	if err != nil {
		req.err = err
		req.waiting.Done()
		return
	}
	c.waitingChan <- req
}

func (c *Client) finishRequest(reply redis.Reply) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
		}
	}()
	var req *request
	select {
	case req = <-c.waitingChan:
	default:
		logger.Warnf("unexpected reply from %s: %q", c.addr, reply.GetBytes())
		return
	}
	req.reply = reply
	if req.waiting != nil {
		req.waiting.Done()
	}
}

// reconnect 重新建立连接，等待中的请求全部以失败结束
func (c *Client) reconnect() {
	logger.Infof("reconnect with: %s", c.addr)
	_ = c.conn.Close()
	var conn net.Conn
	for i := 0; i < 3; i++ {
		var err error
		conn, err = net.Dial("tcp", c.addr)
		if err == nil {
			break
		}
		logger.Errorf("reconnect error: %v", err)
		time.Sleep(time.Second)
	}
	if conn == nil {
		c.Close()
		return
	}
	c.conn = conn
drain:
	for {
		select {
		case req := <-c.waitingChan:
			req.err = errors.New("connection closed")
			req.waiting.Done()
		default:
			break drain
		}
	}
	go c.handleRead()
}
