package atomic

import "sync/atomic"

// Boolean 是可以原子读写的 bool
type Boolean uint32

func (b *Boolean) Get() bool {
	return atomic.LoadUint32((*uint32)(b)) != 0
}

func (b *Boolean) Set(v bool) {
	atomic.StoreUint32((*uint32)(b), toUint32(v))
}

// CompareAndSet 仅当当前值等于 old 时写入 v
func (b *Boolean) CompareAndSet(old, v bool) bool {
	return atomic.CompareAndSwapUint32((*uint32)(b), toUint32(old), toUint32(v))
}

func toUint32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}
