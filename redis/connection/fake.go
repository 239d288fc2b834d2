package connection

import (
	"bytes"
)

// FakeConn 用于测试，写入的数据保存在内存中
type FakeConn struct {
	buf           bytes.Buffer
	password      string
	selectedIndex int
}

func NewFakeConn() *FakeConn {
	return &FakeConn{}
}

func (c *FakeConn) Write(s []byte) error {
	c.buf.Write(s)
	return nil
}

func (c *FakeConn) SetPassword(password string) {
	c.password = password
}

func (c *FakeConn) GetPassword() string {
	return c.password
}

func (c *FakeConn) GetDBIndex() int {
	return c.selectedIndex
}

func (c *FakeConn) SelectDB(dbIndex int) {
	c.selectedIndex = dbIndex
}

func (c *FakeConn) Clean() {
	c.buf.Reset()
}

func (c *FakeConn) GetBytes() []byte {
	return c.buf.Bytes()
}
