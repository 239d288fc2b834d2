package dict

// SimpleHashMap 是基于内置 map 的 Map 实现，key 必须是可比较类型
type SimpleHashMap struct {
	data map[any]any
}

func NewSimpleHashMap() *SimpleHashMap {
	return &SimpleHashMap{data: make(map[any]any)}
}

func (m *SimpleHashMap) Size() int {
	if m.data == nil {
		panic("Nil map")
	}
	return len(m.data)
}

func (m *SimpleHashMap) IsEmpty() bool {
	return m.Size() == 0
}

func (m *SimpleHashMap) ContainsKey(key any) bool {
	_, ok := m.data[key]
	return ok
}

func (m *SimpleHashMap) ContainsValue(value any) bool {
	for _, v := range m.data {
		if equal(v, value) {
			return true
		}
	}
	return false
}

func (m *SimpleHashMap) Get(key any) any {
	if m.data == nil {
		panic("Nil map")
	}
	return m.data[key]
}

func (m *SimpleHashMap) Put(key any, value any) any {
	if m.data == nil {
		panic("Nil map")
	}
	old := m.data[key]
	m.data[key] = value
	return old
}

func (m *SimpleHashMap) Remove(key any) any {
	if m.data == nil {
		panic("Nil map")
	}
	old, exists := m.data[key]
	if exists {
		delete(m.data, key)
	}
	return old
}

func (m *SimpleHashMap) PutAll(src Map) {
	src.ForEach(func(key any, value any) bool {
		m.data[key] = value
		return true
	})
}

func (m *SimpleHashMap) Clear() {
	*m = *NewSimpleHashMap()
}

func (m *SimpleHashMap) ForEach(p Processor) {
	if m.data == nil {
		panic("Nil map")
	}
	for k, v := range m.data {
		if !p(k, v) {
			break
		}
	}
}

func (m *SimpleHashMap) KeySet() []any {
	res := make([]any, 0, len(m.data))
	for key := range m.data {
		res = append(res, key)
	}
	return res
}

func (m *SimpleHashMap) Values() []any {
	res := make([]any, 0, len(m.data))
	for _, v := range m.data {
		res = append(res, v)
	}
	return res
}

func (m *SimpleHashMap) EntrySet() []Entry {
	res := make([]Entry, 0, len(m.data))
	for k, v := range m.data {
		res = append(res, Entry{Key: k, Value: v})
	}
	return res
}
