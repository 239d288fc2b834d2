package dict

const (
	initialCapacity = 16
	loadFactor      = 0.8
	resizeFactor    = 1.5
)

// entry 是链表中的一个节点，hash 在创建时计算并缓存
type entry struct {
	hash  uint32
	key   any
	value any
	next  *entry
}

// ChainedHashMap 是使用拉链法解决冲突的哈希表，容量随负载因子自动扩缩
// 它不是线程安全的，并发访问需要调用方自行加锁
type ChainedHashMap struct {
	table []*entry
	size  int
}

// Stats 描述哈希表当前的桶分布
type Stats struct {
	Size         int
	Capacity     int
	UsedBuckets  int
	LongestChain int
}

func NewChainedHashMap() *ChainedHashMap {
	return &ChainedHashMap{
		table: make([]*entry, initialCapacity),
	}
}

func (m *ChainedHashMap) Size() int {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	return m.size
}

func (m *ChainedHashMap) IsEmpty() bool {
	return m.Size() == 0
}

// Capacity 返回当前桶数组的长度
func (m *ChainedHashMap) Capacity() int {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	return len(m.table)
}

func (m *ChainedHashMap) ContainsKey(key any) bool {
	if m.Size() == 0 {
		return false
	}
	return m.lookup(key) != nil
}

// ContainsValue 按桶数组顺序线性扫描
func (m *ChainedHashMap) ContainsValue(value any) bool {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	for _, head := range m.table {
		for e := head; e != nil; e = e.next {
			if equal(e.value, value) {
				return true
			}
		}
	}
	return false
}

// Get 对不存在的 key 返回 nil，与存储了 nil 的 key 无法区分
func (m *ChainedHashMap) Get(key any) any {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	if e := m.lookup(key); e != nil {
		return e.value
	}
	return nil
}

// Put 插入或原地更新，返回旧值
func (m *ChainedHashMap) Put(key any, value any) any {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	return m.insert(&entry{
		hash:  hashOf(key),
		key:   key,
		value: value,
	}, true)
}

// Remove 把节点从链表中摘除，返回被删除的值
func (m *ChainedHashMap) Remove(key any) any {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	hash := hashOf(key)
	var removed any
	for link := &m.table[m.indexFor(hash)]; *link != nil; link = &(*link).next {
		e := *link
		if e.hash == hash && equal(e.key, key) {
			*link = e.next
			e.next = nil
			removed = e.value
			m.size--
			break
		}
	}
	m.checkResize()
	return removed
}

// PutAll 按 src 的遍历顺序逐个 Put
func (m *ChainedHashMap) PutAll(src Map) {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	if other, ok := src.(*ChainedHashMap); ok && other == m {
		return
	}
	src.ForEach(func(key any, value any) bool {
		m.Put(key, value)
		return true
	})
}

// Clear 清空所有桶，容量保持不变
func (m *ChainedHashMap) Clear() {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	for i := range m.table {
		m.table[i] = nil
	}
	m.size = 0
}

func (m *ChainedHashMap) ForEach(p Processor) {
	if m == nil {
		panic("Nil ChainedHashMap")
	}
	for _, head := range m.table {
		for e := head; e != nil; e = e.next {
			if !p(e.key, e.value) {
				return
			}
		}
	}
}

func (m *ChainedHashMap) KeySet() []any {
	keys := make([]any, 0, m.Size())
	m.ForEach(func(key any, _ any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values 对每个不同的 key 取一次值，相等的值会重复出现
func (m *ChainedHashMap) Values() []any {
	values := make([]any, 0, m.Size())
	for _, key := range m.KeySet() {
		values = append(values, m.Get(key))
	}
	return values
}

// EntrySet 返回快照，之后对哈希表的修改不会反映到结果中
func (m *ChainedHashMap) EntrySet() []Entry {
	keys := m.KeySet()
	entries := make([]Entry, len(keys))
	for i, key := range keys {
		entries[i] = Entry{
			Key:   key,
			Value: m.Get(key),
		}
	}
	return entries
}

func (m *ChainedHashMap) Stats() Stats {
	st := Stats{
		Size:     m.Size(),
		Capacity: len(m.table),
	}
	for _, head := range m.table {
		if head == nil {
			continue
		}
		st.UsedBuckets++
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		if n > st.LongestChain {
			st.LongestChain = n
		}
	}
	return st
}

// indexFor 用掩码而不是取模计算下标
// 容量不是 2 的整数次幂时（第一次扩容之后）只有部分桶会被用到
func (m *ChainedHashMap) indexFor(hash uint32) int {
	return int(hash & uint32(len(m.table)-1))
}

func (m *ChainedHashMap) lookup(key any) *entry {
	hash := hashOf(key)
	for e := m.table[m.indexFor(hash)]; e != nil; e = e.next {
		if e.hash == hash && equal(e.key, key) {
			return e
		}
	}
	return nil
}

// insert 把 e 追加到对应链表的尾部
// triggerResize 为 false 时只用于 rehash：不查重、不计数、不触发扩缩容
func (m *ChainedHashMap) insert(e *entry, triggerResize bool) any {
	link := &m.table[m.indexFor(e.hash)]
	for *link != nil {
		cur := *link
		if triggerResize && cur.hash == e.hash && equal(cur.key, e.key) {
			old := cur.value
			cur.value = e.value
			m.checkResize()
			return old
		}
		link = &cur.next
	}
	*link = e
	if triggerResize {
		m.size++
		m.checkResize()
	}
	return nil
}

// checkResize 在每次 Put 和 Remove 之后调用
func (m *ChainedHashMap) checkResize() {
	capacity := float64(len(m.table))
	size := float64(m.size)
	if size >= capacity*loadFactor {
		m.rehash(int(capacity * resizeFactor))
	} else if size < capacity/resizeFactor*loadFactor-1 && len(m.table) > initialCapacity {
		newCapacity := int(capacity / resizeFactor)
		if newCapacity < initialCapacity {
			newCapacity = initialCapacity
		}
		m.rehash(newCapacity)
	}
}

// rehash 分配新的桶数组，用缓存的 hash 重新放置每个节点
func (m *ChainedHashMap) rehash(newCapacity int) {
	old := m.table
	m.table = make([]*entry, newCapacity)
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			e.next = nil
			m.insert(e, false)
			e = next
		}
	}
}
