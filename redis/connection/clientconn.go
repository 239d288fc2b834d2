package connection

import (
	"chaindict/lib/sync/wait"
	"net"
	"sync"
	"time"
)

// ClientConn 是服务端持有的一个客户端连接
type ClientConn struct {
	conn          net.Conn
	waitingReply  wait.Wait
	mutex         sync.Mutex
	password      string
	selectedIndex int
}

func NewClientConn(conn net.Conn) *ClientConn {
	return &ClientConn{conn: conn}
}

func (c *ClientConn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close 等待正在写出的回复结束（最多 10 秒）后关闭连接
func (c *ClientConn) Close() error {
	c.waitingReply.WaitWithTimeout(10 * time.Second)
	return c.conn.Close()
}

func (c *ClientConn) Write(s []byte) error {
	if len(s) == 0 {
		return nil
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.waitingReply.Add(1)
	defer c.waitingReply.Done()
	_, err := c.conn.Write(s)
	return err
}

func (c *ClientConn) SetPassword(password string) {
	c.password = password
}

func (c *ClientConn) GetPassword() string {
	return c.password
}

func (c *ClientConn) GetDBIndex() int {
	return c.selectedIndex
}

func (c *ClientConn) SelectDB(dbIndex int) {
	c.selectedIndex = dbIndex
}
