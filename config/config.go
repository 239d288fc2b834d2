package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// ServerProperties 对应配置文件中的各项，字段通过 cfg 标签匹配
type ServerProperties struct {
	Bind        string `cfg:"bind"`
	Port        int    `cfg:"port"`
	Databases   int    `cfg:"databases"`
	RDBFilename string `cfg:"dbfilename"`
	RequirePass string `cfg:"requirepass"`
	MaxClients  int    `cfg:"maxclients"`
	LogLevel    string `cfg:"loglevel"`
	LogDir      string `cfg:"logdir"`
	LogFile     string `cfg:"logfile"`
}

var Properties *ServerProperties

func init() {
	Properties = defaultProperties()
}

func defaultProperties() *ServerProperties {
	return &ServerProperties{
		Bind:      "127.0.0.1",
		Port:      6399,
		Databases: 16,
		LogLevel:  "info",
	}
}

// Address 返回监听地址
func (p *ServerProperties) Address() string {
	return fmt.Sprintf("%s:%d", p.Bind, p.Port)
}

// SetupConfig 读取配置文件，未出现的项保留默认值
func SetupConfig(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(file)
	p, err := parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	Properties = p
	return nil
}

func parse(reader io.Reader) (*ServerProperties, error) {
	res := defaultProperties()
	m := make(map[string]string)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		pivot := strings.IndexAny(line, " \t")
		if pivot > 0 && pivot < len(line)-1 {
			key := line[0:pivot]
			val := strings.Trim(line[pivot+1:], " \t\"")
			m[strings.ToLower(key)] = val
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := fillProperties(res, m); err != nil {
		return nil, err
	}
	return res, nil
}

func fillProperties(p *ServerProperties, m map[string]string) error {
	fields := reflect.TypeOf(p).Elem()
	values := reflect.ValueOf(p).Elem()
	n := fields.NumField()
	for i := 0; i < n; i++ {
		field := fields.Field(i)
		fieldVal := values.Field(i)
		key, ok := field.Tag.Lookup("cfg")
		if !ok {
			key = field.Name
		}
		val, ok := m[strings.ToLower(key)]
		if !ok {
			continue
		}
		switch field.Type.Kind() {
		case reflect.String:
			fieldVal.SetString(val)
		case reflect.Int:
			intV, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			fieldVal.SetInt(intV)
		case reflect.Bool:
			fieldVal.SetBool(val == "yes")
		case reflect.Slice:
			if field.Type.Elem().Kind() == reflect.String {
				fieldVal.Set(reflect.ValueOf(strings.Split(val, ",")))
			}
		}
	}
	return nil
}
