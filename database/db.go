package database

import (
	"chaindict/datastruct/dict"
	"chaindict/interface/redis"
	"chaindict/lib/timewheel"
	"chaindict/redis/protocol"
	"strconv"
	"sync"
	"time"
)

// DB 是一个独立的键空间
// data 与 ttl 都是非线程安全的 ChainedHashMap，所有访问都必须持有 mu
type DB struct {
	index int
	mu    sync.Mutex
	data  *dict.ChainedHashMap
	ttl   *dict.ChainedHashMap
}

func newDB(index int) *DB {
	return &DB{
		index: index,
		data:  dict.NewChainedHashMap(),
		ttl:   dict.NewChainedHashMap(),
	}
}

// Execute 执行普通的数据命令
func (db *DB) Execute(line redis.Line) redis.Reply {
	cmdName := string(line.CommandName())
	cmd, ok := cmdMap[cmdName]
	if !ok {
		return protocol.NewErrorReply("ERR unknown command '" + cmdName + "'")
	}
	if invalidArity(line, cmd) {
		return protocol.ArgNumErrorReply(cmdName)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return cmd.executor(db, line.CommandContent())
}

// Size 返回键的个数，包括已过期但尚未被清理的键
func (db *DB) Size() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.Size()
}

// 以下方法的调用方必须持有 mu

func (db *DB) getEntity(key string) (any, bool) {
	if db.expireIfNeeded(key) {
		return nil, false
	}
	val := db.data.Get(key)
	return val, val != nil
}

func (db *DB) putEntity(key string, val any) {
	db.data.Put(key, val)
}

func (db *DB) removeKey(key string) bool {
	if !db.data.ContainsKey(key) {
		return false
	}
	db.data.Remove(key)
	if db.ttl.Remove(key) != nil {
		timewheel.Cancel(db.expireTaskKey(key))
	}
	return true
}

func (db *DB) flush() {
	for _, key := range db.ttl.KeySet() {
		timewheel.Cancel(db.expireTaskKey(key.(string)))
	}
	db.data.Clear()
	db.ttl.Clear()
}

func (db *DB) expireAt(key string, at time.Time) {
	db.ttl.Put(key, at)
	timewheel.At(at, db.expireTaskKey(key), func() {
		db.mu.Lock()
		defer db.mu.Unlock()
		db.expireIfNeeded(key)
	})
}

func (db *DB) persist(key string) bool {
	if db.ttl.Remove(key) == nil {
		return false
	}
	timewheel.Cancel(db.expireTaskKey(key))
	return true
}

func (db *DB) expireTime(key string) (time.Time, bool) {
	at, ok := db.ttl.Get(key).(time.Time)
	return at, ok
}

// expireIfNeeded 删除已过期的 key，返回是否删除
func (db *DB) expireIfNeeded(key string) bool {
	at, ok := db.expireTime(key)
	if !ok || time.Now().Before(at) {
		return false
	}
	return db.removeKey(key)
}

func (db *DB) expireTaskKey(key string) string {
	return "expire:" + strconv.Itoa(db.index) + ":" + key
}

// forEach 遍历未过期的键
func (db *DB) forEach(p func(key string, val any, expireAt *time.Time) bool) {
	now := time.Now()
	db.data.ForEach(func(k any, v any) bool {
		key := k.(string)
		var expireAt *time.Time
		if at, ok := db.expireTime(key); ok {
			if !now.Before(at) {
				return true
			}
			expireAt = &at
		}
		return p(key, v, expireAt)
	})
}
