package persistent

import (
	"chaindict/lib/logger"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hdt3213/rdb/core"
	rdb "github.com/hdt3213/rdb/parser"
)

// Record 是一个待持久化或刚读取的键
// Value 为 []byte（字符串）或 map[string][]byte（哈希）
type Record struct {
	Key      string
	Value    any
	ExpireAt *time.Time
}

// Source 提供要写入 RDB 文件的数据
type Source interface {
	DBCount() int
	Snapshot(dbIndex int) []*Record
}

// Sink 接收从 RDB 文件读取的数据
type Sink interface {
	Restore(dbIndex int, rec *Record)
}

// Save 把 src 的全部数据以 RDB 格式写入 w
func Save(w io.Writer, src Source) error {
	encoder := core.NewEncoder(w).EnableCompress()
	if err := encoder.WriteHeader(); err != nil {
		return err
	}
	auxMap := map[string]string{
		"redis-ver":    "6.0.0",
		"redis-bits":   "64",
		"aof-preamble": "0",
		"ctime":        strconv.FormatInt(time.Now().Unix(), 10),
	}
	for k, v := range auxMap {
		if err := encoder.WriteAux(k, v); err != nil {
			return err
		}
	}
	for i := 0; i < src.DBCount(); i++ {
		records := src.Snapshot(i)
		if len(records) == 0 {
			continue
		}
		ttlCount := 0
		for _, rec := range records {
			if rec.ExpireAt != nil {
				ttlCount++
			}
		}
		if err := encoder.WriteDBHeader(uint(i), uint64(len(records)), uint64(ttlCount)); err != nil {
			return err
		}
		for _, rec := range records {
			if err := writeRecord(encoder, rec); err != nil {
				return err
			}
		}
	}
	return encoder.WriteEnd()
}

func writeRecord(encoder *core.Encoder, rec *Record) error {
	var opts []any
	if rec.ExpireAt != nil {
		opts = append(opts, core.WithTTL(uint64(rec.ExpireAt.UnixMilli())))
	}
	switch v := rec.Value.(type) {
	case []byte:
		return encoder.WriteStringObject(rec.Key, v, opts...)
	case map[string][]byte:
		return encoder.WriteHashMapObject(rec.Key, v, opts...)
	}
	return fmt.Errorf("unsupported value type %T of key %s", rec.Value, rec.Key)
}

// Load 读取 RDB 数据并逐个交给 sink，不支持的类型会被跳过
func Load(r io.Reader, sink Sink) error {
	decoder := rdb.NewDecoder(r)
	return decoder.Parse(func(obj rdb.RedisObject) bool {
		rec := &Record{
			Key:      obj.GetKey(),
			ExpireAt: obj.GetExpiration(),
		}
		switch obj.GetType() {
		case rdb.StringType:
			rec.Value = obj.(*rdb.StringObject).Value
		case rdb.HashType:
			rec.Value = obj.(*rdb.HashObject).Hash
		default:
			logger.Warnf("skip key %s of unsupported type %s", obj.GetKey(), obj.GetType())
			return true
		}
		sink.Restore(obj.GetDBIndex(), rec)
		return true
	})
}

// SaveFile 先写入同目录下的临时文件，成功后再重命名，避免留下不完整的文件
func SaveFile(filename string, src Source) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "temp-*.rdb")
	if err != nil {
		return fmt.Errorf("create temp rdb file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if err = Save(tmp, src); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write rdb: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

func LoadFile(filename string, sink Sink) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	if err = Load(file, sink); err != nil {
		return fmt.Errorf("load rdb %s: %w", filename, err)
	}
	return nil
}
