package database

import (
	"chaindict/datastruct/dict"
	"chaindict/interface/redis"
	"chaindict/redis/protocol"
	"strconv"
	"strings"
)

// execDebug 目前只支持 DEBUG HTSTATS [key]
// 不带 key 时返回键空间的桶分布，带 key 时返回该哈希值的桶分布
func execDebug(db *DB, args [][]byte) redis.Reply {
	if strings.ToLower(string(args[0])) != "htstats" {
		return protocol.NewErrorReply("ERR unknown subcommand '" + string(args[0]) + "'")
	}
	switch len(args) {
	case 1:
		return statsReply(db.data.Stats())
	case 2:
		m, errReply := db.getAsHash(string(args[1]))
		if errReply != nil {
			return errReply
		}
		if m == nil {
			return protocol.NewErrorReply("ERR no such key")
		}
		return statsReply(m.Stats())
	}
	return protocol.ArgNumErrorReply("debug")
}

func statsReply(st dict.Stats) redis.Reply {
	return protocol.MultiBulkReply([][]byte{
		[]byte("size"), []byte(strconv.Itoa(st.Size)),
		[]byte("capacity"), []byte(strconv.Itoa(st.Capacity)),
		[]byte("used_buckets"), []byte(strconv.Itoa(st.UsedBuckets)),
		[]byte("longest_chain"), []byte(strconv.Itoa(st.LongestChain)),
	})
}

func init() {
	RegisterCommand("debug", execDebug, -2)
}
