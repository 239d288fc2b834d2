package database

import (
	"chaindict/datastruct/dict"
	"chaindict/interface/redis"
	"chaindict/redis/protocol"
	"strconv"
	"time"

	"github.com/gobwas/glob"
)

func execDel(db *DB, args [][]byte) redis.Reply {
	deleted := 0
	for _, arg := range args {
		if db.removeKey(string(arg)) {
			deleted++
		}
	}
	return protocol.IntReply(int64(deleted))
}

func execExists(db *DB, args [][]byte) redis.Reply {
	res := 0
	for _, arg := range args {
		if _, ok := db.getEntity(string(arg)); ok {
			res++
		}
	}
	return protocol.IntReply(int64(res))
}

func execKeys(db *DB, args [][]byte) redis.Reply {
	pattern, err := glob.Compile(string(args[0]))
	if err != nil {
		return protocol.NewErrorReply("ERR illegal pattern")
	}
	res := make([][]byte, 0)
	db.forEach(func(key string, _ any, _ *time.Time) bool {
		if pattern.Match(key) {
			res = append(res, []byte(key))
		}
		return true
	})
	return protocol.MultiBulkReply(res)
}

func execDBSize(db *DB, _ [][]byte) redis.Reply {
	return protocol.IntReply(int64(db.data.Size()))
}

func execFlushDB(db *DB, _ [][]byte) redis.Reply {
	db.flush()
	return protocol.OkReply()
}

func execType(db *DB, args [][]byte) redis.Reply {
	val, ok := db.getEntity(string(args[0]))
	if !ok {
		return protocol.StatusReply("none")
	}
	switch val.(type) {
	case []byte:
		return protocol.StatusReply("string")
	case *dict.ChainedHashMap:
		return protocol.StatusReply("hash")
	}
	return protocol.UnknownErrorReply()
}

func execExpire(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	seconds, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return protocol.NewErrorReply("ERR value is not an integer or out of range")
	}
	if _, ok := db.getEntity(key); !ok {
		return protocol.IntReply(0)
	}
	if seconds <= 0 {
		db.removeKey(key)
		return protocol.IntReply(1)
	}
	db.expireAt(key, time.Now().Add(time.Duration(seconds)*time.Second))
	return protocol.IntReply(1)
}

// execTTL 对不存在的 key 返回 -2，对没有过期时间的 key 返回 -1
func execTTL(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	if _, ok := db.getEntity(key); !ok {
		return protocol.IntReply(-2)
	}
	at, ok := db.expireTime(key)
	if !ok {
		return protocol.IntReply(-1)
	}
	ms := time.Until(at).Milliseconds()
	return protocol.IntReply((ms + 500) / 1000)
}

func execPersist(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	if _, ok := db.getEntity(key); !ok {
		return protocol.IntReply(0)
	}
	if db.persist(key) {
		return protocol.IntReply(1)
	}
	return protocol.IntReply(0)
}

func init() {
	RegisterCommand("del", execDel, -2)
	RegisterCommand("exists", execExists, -2)
	RegisterCommand("keys", execKeys, 2)
	RegisterCommand("dbsize", execDBSize, 1)
	RegisterCommand("flushdb", execFlushDB, 1)
	RegisterCommand("type", execType, 2)
	RegisterCommand("expire", execExpire, 3)
	RegisterCommand("ttl", execTTL, 2)
	RegisterCommand("persist", execPersist, 2)
}
