package utils

import "math/rand"

func BytesEqual(a, b []byte) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const alnum = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// AlnumString 生成长度为 l 的随机字母数字串
func AlnumString(l int) string {
	a := make([]byte, l)
	for i := range a {
		a[i] = alnum[rand.Intn(len(alnum))]
	}
	return string(a)
}

// StringsToLine 把若干字符串转换成一条命令
func StringsToLine(strs ...string) [][]byte {
	res := make([][]byte, len(strs))
	for i, str := range strs {
		res[i] = []byte(str)
	}
	return res
}

// BytesToStrings 是 StringsToLine 的逆操作
func BytesToStrings(args [][]byte) []string {
	res := make([]string, len(args))
	for i, arg := range args {
		res[i] = string(arg)
	}
	return res
}
