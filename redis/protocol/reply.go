package protocol

import (
	"bytes"
	"chaindict/interface/redis"
	"strconv"
)

const crlf = "\r\n"

var (
	okBytes             = []byte("+OK\r\n")
	pongBytes           = []byte("+PONG\r\n")
	nullBulkBytes       = []byte("$-1\r\n")
	emptyMultiBulkBytes = []byte("*0\r\n")
)

type (
	statusReply    struct{ status string }
	intReply       struct{ code int64 }
	bulkReply      struct{ arg []byte }
	multiBulkReply struct{ args [][]byte }
	multiRawReply  struct{ replies []redis.Reply }
	okReply        struct{}
	pongReply      struct{}
)

func (r *statusReply) GetBytes() []byte {
	return []byte("+" + r.status + crlf)
}

func (r *intReply) GetBytes() []byte {
	return []byte(":" + strconv.FormatInt(r.code, 10) + crlf)
}

// bulkReply 的 arg 为 nil 时编码为 null bulk string
func (r *bulkReply) GetBytes() []byte {
	return appendBulk(nil, r.arg)
}

// multiBulkReply 中为 nil 的元素编码为 null bulk string
func (r *multiBulkReply) GetBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.args)) + crlf)
	for _, arg := range r.args {
		buf.Write(appendBulk(nil, arg))
	}
	return buf.Bytes()
}

func (r *multiRawReply) GetBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.replies)) + crlf)
	for _, reply := range r.replies {
		buf.Write(reply.GetBytes())
	}
	return buf.Bytes()
}

func (r *okReply) GetBytes() []byte {
	return okBytes
}

func (r *pongReply) GetBytes() []byte {
	return pongBytes
}

func appendBulk(dst []byte, arg []byte) []byte {
	if arg == nil {
		return append(dst, nullBulkBytes...)
	}
	dst = append(dst, '$')
	dst = strconv.AppendInt(dst, int64(len(arg)), 10)
	dst = append(dst, crlf...)
	dst = append(dst, arg...)
	return append(dst, crlf...)
}

func OkReply() redis.Reply {
	return &okReply{}
}

func PongReply() redis.Reply {
	return &pongReply{}
}

func StatusReply(status string) redis.Reply {
	return &statusReply{status: status}
}

func IntReply(code int64) redis.Reply {
	return &intReply{code: code}
}

func BulkReply(arg []byte) redis.Reply {
	if arg == nil {
		arg = []byte{}
	}
	return &bulkReply{arg: arg}
}

func NullBulkReply() redis.Reply {
	return &bulkReply{}
}

func MultiBulkReply(args [][]byte) redis.Reply {
	return &multiBulkReply{args: args}
}

func EmptyMultiBulkReply() redis.Reply {
	return &multiBulkReply{args: [][]byte{}}
}

func MultiRawReply(replies []redis.Reply) redis.Reply {
	return &multiRawReply{replies: replies}
}

func IsOKReply(r redis.Reply) bool {
	return bytes.Equal(okBytes, r.GetBytes())
}

func FetchStatus(r redis.Reply) (string, bool) {
	switch st := r.(type) {
	case *statusReply:
		return st.status, true
	case *okReply:
		return "OK", true
	case *pongReply:
		return "PONG", true
	}
	return "", false
}

func FetchCode(r redis.Reply) (int64, bool) {
	ir, ok := r.(*intReply)
	if !ok {
		return 0, false
	}
	return ir.code, true
}

// FetchBulk 对 null bulk string 返回 nil, true
func FetchBulk(r redis.Reply) ([]byte, bool) {
	br, ok := r.(*bulkReply)
	if !ok {
		return nil, false
	}
	return br.arg, true
}

func FetchMultiBulk(r redis.Reply) ([][]byte, bool) {
	mr, ok := r.(*multiBulkReply)
	if !ok {
		return nil, false
	}
	return mr.args, true
}

func FetchMultiRaw(r redis.Reply) ([]redis.Reply, bool) {
	mr, ok := r.(*multiRawReply)
	if !ok {
		return nil, false
	}
	return mr.replies, true
}
