package parser

import (
	"bufio"
	"bytes"
	"chaindict/interface/redis"
	"chaindict/lib/logger"
	"chaindict/redis/protocol"
	"errors"
	"io"
	"runtime/debug"
	"strconv"
)

// Payload 储存了 redis.Reply 或是一个 error
type Payload struct {
	Data redis.Reply
	Err  error
}

// ParseStream 从 io.Reader 中读取数据，并将对应的 Payload 送进通道
// 遇到 io 错误时发送最后一个 Payload 后关闭通道
func ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go parse0(reader, ch)
	return ch
}

// ParseBytes 一次性解析 data 中的全部消息
func ParseBytes(data []byte) ([]redis.Reply, error) {
	var res []redis.Reply
	for payload := range ParseStream(bytes.NewReader(data)) {
		if payload.Err != nil {
			if payload.Err == io.EOF {
				break
			}
			return nil, payload.Err
		}
		res = append(res, payload.Data)
	}
	return res, nil
}

// protocolError 表示格式错误，解析可以继续
type protocolError struct {
	msg string
}

func (e *protocolError) Error() string {
	return "Protocol error: " + e.msg
}

func newProtocolError(msg []byte) error {
	return &protocolError{msg: strconv.Quote(string(msg))}
}

// IsProtocolError 判断 err 是否只是格式错误
func IsProtocolError(err error) bool {
	var pe *protocolError
	return errors.As(err, &pe)
}

func parse0(reader io.Reader, ch chan<- *Payload) {
	defer func() {
		if err := recover(); err != nil {
			logger.Error(err, string(debug.Stack()))
		}
	}()
	defer close(ch)
	bufReader := bufio.NewReader(reader)
	for {
		reply, err := readReply(bufReader)
		if err != nil {
			ch <- &Payload{Err: err}
			if IsProtocolError(err) {
				continue
			}
			return
		}
		ch <- &Payload{Data: reply}
	}
}

// readLine 读取一行并去掉末尾的 CRLF
func readLine(reader *bufio.Reader) ([]byte, error) {
	msg, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	n := len(msg)
	if n < 2 || msg[n-2] != '\r' {
		return nil, newProtocolError(msg)
	}
	return msg[:n-2], nil
}

func readReply(reader *bufio.Reader) (redis.Reply, error) {
	line, err := readLine(reader)
	if err != nil {
		return nil, err
	}
	if len(line) == 0 {
		return nil, newProtocolError(line)
	}
	switch line[0] {
	case '+':
		return protocol.StatusReply(string(line[1:])), nil
	case '-':
		return protocol.NewErrorReply(string(line[1:])), nil
	case ':':
		code, err := strconv.ParseInt(string(line[1:]), 10, 64)
		if err != nil {
			return nil, newProtocolError(line)
		}
		return protocol.IntReply(code), nil
	case '$':
		arg, err := readBulkBody(reader, line)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return protocol.NullBulkReply(), nil
		}
		return protocol.BulkReply(arg), nil
	case '*':
		return readMultiBulk(reader, line)
	default:
		// 文本协议，例如 telnet 中输入的 "set a b"
		return protocol.MultiBulkReply(bytes.Fields(line)), nil
	}
}

// readBulkBody 根据 header 读取定长的 body，header 为 $-1 时返回 nil
// 使用 io.ReadFull 保证二进制安全
func readBulkBody(reader *bufio.Reader, header []byte) ([]byte, error) {
	bulkLen, err := strconv.ParseInt(string(header[1:]), 10, 64)
	if err != nil || bulkLen < -1 {
		return nil, newProtocolError(header)
	}
	if bulkLen == -1 {
		return nil, nil
	}
	body := make([]byte, bulkLen+2)
	if _, err = io.ReadFull(reader, body); err != nil {
		return nil, err
	}
	if body[bulkLen] != '\r' || body[bulkLen+1] != '\n' {
		return nil, newProtocolError(body)
	}
	return body[:bulkLen], nil
}

func readMultiBulk(reader *bufio.Reader, header []byte) (redis.Reply, error) {
	n, err := strconv.ParseInt(string(header[1:]), 10, 32)
	if err != nil || n < -1 {
		return nil, newProtocolError(header)
	}
	if n <= 0 {
		return protocol.EmptyMultiBulkReply(), nil
	}
	args := make([][]byte, 0, n)
	for i := int64(0); i < n; i++ {
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}
		if len(line) == 0 || line[0] != '$' {
			return nil, newProtocolError(line)
		}
		arg, err := readBulkBody(reader, line)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return protocol.MultiBulkReply(args), nil
}
