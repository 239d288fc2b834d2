package dict

// Processor 在遍历时被调用，返回 false 时停止遍历
type Processor func(key any, value any) bool

// Entry 是 EntrySet 返回的键值对快照
type Entry struct {
	Key   any
	Value any
}

// Map 是可变的键值映射
// Get 与 Remove 对于不存在的 key 和值为 nil 的 key 都返回 nil，需要区分时使用 ContainsKey
type Map interface {
	Size() int
	IsEmpty() bool
	ContainsKey(key any) bool
	ContainsValue(value any) bool
	Get(key any) any
	Put(key any, value any) any
	Remove(key any) any
	PutAll(src Map)
	Clear()
	KeySet() []any
	Values() []any
	EntrySet() []Entry
	ForEach(p Processor)
}
