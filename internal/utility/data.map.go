package utility

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AsMap chuyển các kiểu object thường gặp (JSON, BSON) về map[string]interface{}
// @params - giá trị cần chuyển đổi
// @returns - map và true nếu v là object
func AsMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case bson.M:
		return map[string]interface{}(m), true
	case bson.D:
		out := make(map[string]interface{}, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

// AsSlice chuyển các kiểu mảng thường gặp (JSON, BSON) về []interface{}
// @params - giá trị cần chuyển đổi
// @returns - slice và true nếu v là mảng
func AsSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case primitive.A:
		return []interface{}(s), true
	case []map[string]interface{}:
		out := make([]interface{}, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case []bson.M:
		out := make([]interface{}, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	default:
		return nil, false
	}
}

// StringValue lấy giá trị string của key trong map
// @params - map cần tìm, key cần tìm
// @returns - giá trị string, "" nếu không có hoặc không phải string
func StringValue(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// CloneMap sao chép nông map
// @params - map nguồn
// @returns - map mới chứa cùng các cặp key/value
func CloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
