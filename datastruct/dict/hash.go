package dict

import (
	"chaindict/lib/utils"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher 可由自定义 key 实现，相等的 key 必须返回相同的值
type Hasher interface {
	HashCode() uint32
}

// Equaler 可由自定义 key 或 value 实现，用于替代 == 判断相等
type Equaler interface {
	Equals(other any) bool
}

// hashOf 计算 key 的哈希值，nil 的哈希值固定为 0
// 整数 key 的哈希值就是它本身（高 32 位折叠进低 32 位）
func hashOf(key any) uint32 {
	switch k := key.(type) {
	case nil:
		return 0
	case Hasher:
		return k.HashCode()
	case int:
		return fold(uint64(k))
	case int8:
		return uint32(k)
	case int16:
		return uint32(k)
	case int32:
		return uint32(k)
	case int64:
		return fold(uint64(k))
	case uint:
		return fold(uint64(k))
	case uint8:
		return uint32(k)
	case uint16:
		return uint32(k)
	case uint32:
		return k
	case uint64:
		return fold(k)
	case uintptr:
		return fold(uint64(k))
	case bool:
		if k {
			return 1231
		}
		return 1237
	case float32:
		// 0.0 == -0.0，二者必须落在同一个桶
		if k == 0 {
			return 0
		}
		return math.Float32bits(k)
	case float64:
		if k == 0 {
			return 0
		}
		return fold(math.Float64bits(k))
	case string:
		return fold(xxhash.Sum64String(k))
	case []byte:
		return fold(xxhash.Sum64(k))
	}
	v := reflect.ValueOf(key)
	if !v.Type().Comparable() {
		panic("dict: unhashable key type " + v.Type().String())
	}
	return hashValue(v)
}

// hashValue 按 Kind 逐层计算哈希，与 == 的语义保持一致：
// 浮点零不区分正负，指针按地址，结构体和数组由各字段（元素）的哈希组合而成
func hashValue(v reflect.Value) uint32 {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1231
		}
		return 1237
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fold(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fold(v.Uint())
	case reflect.Float32, reflect.Float64:
		return hashFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return hashFloat(real(c))*31 + hashFloat(imag(c))
	case reflect.String:
		return fold(xxhash.Sum64String(v.String()))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return fold(uint64(v.Pointer()))
	case reflect.Interface:
		if v.IsNil() {
			return 0
		}
		return hashValue(v.Elem())
	case reflect.Struct:
		var h uint32 = 17
		for i := 0; i < v.NumField(); i++ {
			h = h*31 + hashValue(v.Field(i))
		}
		return h
	case reflect.Array:
		var h uint32 = 17
		for i := 0; i < v.Len(); i++ {
			h = h*31 + hashValue(v.Index(i))
		}
		return h
	}
	panic("dict: unhashable value of type " + v.Type().String())
}

func hashFloat(f float64) uint32 {
	if f == 0 {
		return 0
	}
	return fold(math.Float64bits(f))
}

func fold(h uint64) uint32 {
	return uint32(h ^ h>>32)
}

// equal 判断两个 key（或 value）是否相等
// 两个 nil 总是相等；可比较且 == 成立时不再调用 Equals
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta.Comparable() && ta == reflect.TypeOf(b) && a == b {
		return true
	}
	if e, ok := a.(Equaler); ok {
		return e.Equals(b)
	}
	if ba, ok := a.([]byte); ok {
		bb, ok := b.([]byte)
		return ok && utils.BytesEqual(ba, bb)
	}
	return false
}
