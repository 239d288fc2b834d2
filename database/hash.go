package database

import (
	"chaindict/datastruct/dict"
	"chaindict/interface/redis"
	"chaindict/redis/protocol"
)

// getAsHash 取出哈希值，key 不存在时返回 nil, nil
func (db *DB) getAsHash(key string) (*dict.ChainedHashMap, redis.ErrorReply) {
	val, ok := db.getEntity(key)
	if !ok {
		return nil, nil
	}
	m, ok := val.(*dict.ChainedHashMap)
	if !ok {
		return nil, protocol.WrongTypeErrorReply()
	}
	return m, nil
}

func (db *DB) getOrInitHash(key string) (*dict.ChainedHashMap, redis.ErrorReply) {
	m, errReply := db.getAsHash(key)
	if errReply != nil {
		return nil, errReply
	}
	if m == nil {
		m = dict.NewChainedHashMap()
		db.putEntity(key, m)
	}
	return m, nil
}

// execHSet HSET key field value [field value ...]，返回新增字段的个数
func execHSet(db *DB, args [][]byte) redis.Reply {
	if len(args)%2 != 1 {
		return protocol.ArgNumErrorReply("hset")
	}
	m, errReply := db.getOrInitHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	added := 0
	for i := 1; i < len(args); i += 2 {
		if m.Put(string(args[i]), args[i+1]) == nil {
			added++
		}
	}
	return protocol.IntReply(int64(added))
}

func execHGet(db *DB, args [][]byte) redis.Reply {
	m, errReply := db.getAsHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if m == nil {
		return protocol.NullBulkReply()
	}
	val, ok := m.Get(string(args[1])).([]byte)
	if !ok {
		return protocol.NullBulkReply()
	}
	return protocol.BulkReply(val)
}

// execHDel 删除字段，哈希为空时删除整个 key
func execHDel(db *DB, args [][]byte) redis.Reply {
	key := string(args[0])
	m, errReply := db.getAsHash(key)
	if errReply != nil {
		return errReply
	}
	if m == nil {
		return protocol.IntReply(0)
	}
	deleted := 0
	for _, field := range args[1:] {
		if m.Remove(string(field)) != nil {
			deleted++
		}
	}
	if m.IsEmpty() {
		db.removeKey(key)
	}
	return protocol.IntReply(int64(deleted))
}

func execHExists(db *DB, args [][]byte) redis.Reply {
	m, errReply := db.getAsHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if m != nil && m.ContainsKey(string(args[1])) {
		return protocol.IntReply(1)
	}
	return protocol.IntReply(0)
}

func execHLen(db *DB, args [][]byte) redis.Reply {
	m, errReply := db.getAsHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if m == nil {
		return protocol.IntReply(0)
	}
	return protocol.IntReply(int64(m.Size()))
}

func execHKeys(db *DB, args [][]byte) redis.Reply {
	m, errReply := db.getAsHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if m == nil {
		return protocol.EmptyMultiBulkReply()
	}
	keys := m.KeySet()
	res := make([][]byte, len(keys))
	for i, field := range keys {
		res[i] = []byte(field.(string))
	}
	return protocol.MultiBulkReply(res)
}

func execHVals(db *DB, args [][]byte) redis.Reply {
	m, errReply := db.getAsHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if m == nil {
		return protocol.EmptyMultiBulkReply()
	}
	values := m.Values()
	res := make([][]byte, len(values))
	for i, val := range values {
		res[i] = val.([]byte)
	}
	return protocol.MultiBulkReply(res)
}

func execHGetAll(db *DB, args [][]byte) redis.Reply {
	m, errReply := db.getAsHash(string(args[0]))
	if errReply != nil {
		return errReply
	}
	if m == nil {
		return protocol.EmptyMultiBulkReply()
	}
	entries := m.EntrySet()
	res := make([][]byte, 0, len(entries)*2)
	for _, e := range entries {
		res = append(res, []byte(e.Key.(string)), e.Value.([]byte))
	}
	return protocol.MultiBulkReply(res)
}

func init() {
	RegisterCommand("hset", execHSet, -4)
	RegisterCommand("hget", execHGet, 3)
	RegisterCommand("hdel", execHDel, -3)
	RegisterCommand("hexists", execHExists, 3)
	RegisterCommand("hlen", execHLen, 2)
	RegisterCommand("hkeys", execHKeys, 2)
	RegisterCommand("hvals", execHVals, 2)
	RegisterCommand("hgetall", execHGetAll, 2)
}
