package database

import (
	"chaindict/config"
	"chaindict/datastruct/dict"
	"chaindict/lib/logger"
	"chaindict/persistent"
	"time"
)

func rdbFilename() string {
	if config.Properties.RDBFilename == "" {
		return defaultRDBFilename
	}
	return config.Properties.RDBFilename
}

func (server *Server) saveRDB() error {
	return persistent.SaveFile(rdbFilename(), server)
}

func (server *Server) loadRDB(filename string) error {
	if err := persistent.LoadFile(filename, server); err != nil {
		return err
	}
	logger.Infof("loaded rdb file %s", filename)
	return nil
}

func (server *Server) DBCount() int {
	return len(server.dbs)
}

// Snapshot 在持有 DB 锁期间复制出全部未过期的键
func (server *Server) Snapshot(dbIndex int) []*persistent.Record {
	db := server.dbs[dbIndex]
	db.mu.Lock()
	defer db.mu.Unlock()
	records := make([]*persistent.Record, 0, db.data.Size())
	db.forEach(func(key string, val any, expireAt *time.Time) bool {
		rec := &persistent.Record{
			Key:      key,
			ExpireAt: expireAt,
		}
		switch v := val.(type) {
		case []byte:
			rec.Value = v
		case *dict.ChainedHashMap:
			hash := make(map[string][]byte, v.Size())
			v.ForEach(func(field any, value any) bool {
				hash[field.(string)] = value.([]byte)
				return true
			})
			rec.Value = hash
		default:
			return true
		}
		records = append(records, rec)
		return true
	})
	return records
}

// Restore 写入一条读取到的记录，已过期或 DB 下标越界的记录会被丢弃
func (server *Server) Restore(dbIndex int, rec *persistent.Record) {
	if dbIndex < 0 || dbIndex >= len(server.dbs) {
		logger.Warnf("skip key %s of db %d: index out of range", rec.Key, dbIndex)
		return
	}
	if rec.ExpireAt != nil && !time.Now().Before(*rec.ExpireAt) {
		return
	}
	db := server.dbs[dbIndex]
	db.mu.Lock()
	defer db.mu.Unlock()
	switch v := rec.Value.(type) {
	case []byte:
		db.putEntity(rec.Key, v)
	case map[string][]byte:
		m := dict.NewChainedHashMap()
		for field, value := range v {
			m.Put(field, value)
		}
		db.putEntity(rec.Key, m)
	default:
		return
	}
	if rec.ExpireAt != nil {
		db.expireAt(rec.Key, *rec.ExpireAt)
	} else {
		db.persist(rec.Key)
	}
}
