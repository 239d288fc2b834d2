package database

import (
	"chaindict/interface/redis"
	"chaindict/redis/protocol"
	"strconv"
	"strings"
	"time"
)

const (
	upsertPolicy = iota
	insertPolicy // NX
	updatePolicy // XX
)

// getAsString 取出字符串值，key 不存在时返回 nil, nil
func (db *DB) getAsString(key string) ([]byte, redis.ErrorReply) {
	val, ok := db.getEntity(key)
	if !ok {
		return nil, nil
	}
	bytes, ok := val.([]byte)
	if !ok {
		return nil, protocol.WrongTypeErrorReply()
	}
	return bytes, nil
}

// execSet SET key value [EX seconds|PX milliseconds] [NX|XX]
func execSet(db *DB, args [][]byte) redis.Reply {
	key, value := string(args[0]), args[1]
	policy := upsertPolicy
	var ttl time.Duration
	for i := 2; i < len(args); i++ {
		switch strings.ToUpper(string(args[i])) {
		case "NX":
			if policy == updatePolicy {
				return protocol.SyntaxErrorReply()
			}
			policy = insertPolicy
		case "XX":
			if policy == insertPolicy {
				return protocol.SyntaxErrorReply()
			}
			policy = updatePolicy
		case "EX", "PX":
			if ttl != 0 || i+1 >= len(args) {
				return protocol.SyntaxErrorReply()
			}
			n, err := strconv.ParseInt(string(args[i+1]), 10, 64)
			if err != nil || n <= 0 {
				return protocol.NewErrorReply("ERR invalid expire time in set")
			}
			unit := time.Second
			if strings.EqualFold(string(args[i]), "PX") {
				unit = time.Millisecond
			}
			ttl = time.Duration(n) * unit
			i++
		default:
			return protocol.SyntaxErrorReply()
		}
	}
	_, exists := db.getEntity(key)
	if (policy == insertPolicy && exists) || (policy == updatePolicy && !exists) {
		return protocol.NullBulkReply()
	}
	db.putEntity(key, value)
	if ttl > 0 {
		db.expireAt(key, time.Now().Add(ttl))
	} else {
		db.persist(key)
	}
	return protocol.OkReply()
}

func execGet(db *DB, args [][]byte) redis.Reply {
	bytes, errReply := db.getAsString(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if bytes == nil {
		return protocol.NullBulkReply()
	}
	return protocol.BulkReply(bytes)
}

func execSetNX(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	if _, exists := db.getEntity(key); exists {
		return protocol.IntReply(0)
	}
	db.putEntity(key, args[1])
	return protocol.IntReply(1)
}

func execGetSet(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	old, errReply := db.getAsString(key)
	if errReply != nil {
		return errReply
	}
	db.putEntity(key, args[1])
	db.persist(key)
	if old == nil {
		return protocol.NullBulkReply()
	}
	return protocol.BulkReply(old)
}

func execMSet(db *DB, args [][]byte) redis.Reply {
	if len(args)%2 != 0 {
		return protocol.ArgNumErrorReply("mset")
	}
	for i := 0; i < len(args); i += 2 {
		key := string(args[i])
		db.putEntity(key, args[i+1])
		db.persist(key)
	}
	return protocol.OkReply()
}

// execMGet 对不存在或类型不是字符串的 key 返回 nil
func execMGet(db *DB, args [][]byte) redis.Reply {
	res := make([][]byte, len(args))
	for i, arg := range args {
		bytes, errReply := db.getAsString(string(arg))
		if errReply == nil {
			res[i] = bytes
		}
	}
	return protocol.MultiBulkReply(res)
}

func execStrLen(db *DB, args [][]byte) redis.Reply {
	bytes, errReply := db.getAsString(string(args[0]))
	if errReply != nil {
		return errReply
	}
	return protocol.IntReply(int64(len(bytes)))
}

func init() {
	RegisterCommand("set", execSet, -3)
	RegisterCommand("get", execGet, 2)
	RegisterCommand("setnx", execSetNX, 3)
	RegisterCommand("getset", execGetSet, 3)
	RegisterCommand("mset", execMSet, -3)
	RegisterCommand("mget", execMGet, -2)
	RegisterCommand("strlen", execStrLen, 2)
}
