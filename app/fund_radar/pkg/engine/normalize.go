package engine

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"

	dm "github.com/iWorld-y/fund_radar/app/fund_radar/pkg/model"
)

var reportType = reflect.TypeOf(dm.Report{})

// decodeReportTree 解析为通用 JSON 树，数字保留原文，拒绝对象之后的多余内容
func decodeReportTree(payload string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()

	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	return tree, nil
}

// normalizeObject 按结构体定义修正模型输出中常见的类型偏差：
// 字符串位置上的数字、布尔转为字符串；null 与缺失标记视为未填写；
// 字符串列表位置上的单个字符串视为单元素列表。其余不匹配留给严格解码报错
func normalizeObject(t reflect.Type, obj map[string]any) {
	fields := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if name := jsonName(f); name != "" {
			fields[strings.ToLower(name)] = f
		}
	}

	for key, v := range obj {
		f, ok := fields[strings.ToLower(key)]
		if !ok {
			continue
		}
		if nv, keep := normalizeValue(f.Type, v); keep {
			obj[key] = nv
		} else {
			delete(obj, key)
		}
	}
}

func normalizeValue(t reflect.Type, v any) (any, bool) {
	if v == nil {
		return nil, false
	}

	switch t.Kind() {
	case reflect.Pointer:
		return normalizeValue(t.Elem(), v)

	case reflect.String:
		switch x := v.(type) {
		case json.Number:
			return x.String(), true
		case bool:
			return strconv.FormatBool(x), true
		}

	case reflect.Slice:
		switch x := v.(type) {
		case string:
			if isMissingMarker(x) || t.Elem().Kind() != reflect.String {
				return nil, false
			}
			return []any{x}, true
		case []any:
			out := make([]any, 0, len(x))
			for _, item := range x {
				if nv, keep := normalizeValue(t.Elem(), item); keep {
					out = append(out, nv)
				}
			}
			return out, true
		}

	case reflect.Struct:
		switch x := v.(type) {
		case map[string]any:
			normalizeObject(t, x)
			return x, true
		case string:
			// 对象位置上只有一句说明，例如 "Not publicly available"
			return nil, false
		}
	}
	return v, true
}

func isMissingMarker(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, dm.NotAvailable) || strings.EqualFold(s, "N/A")
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
