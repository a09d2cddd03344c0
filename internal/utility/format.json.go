package utility

import (
	"bytes"
	"encoding/json"
)

// MarshalIndent encode v thành JSON thụt lề 2 khoảng trắng, không escape HTML
// và không có newline ở cuối
// @params - giá trị cần encode
// @returns - JSON đã thụt lề và lỗi nếu có
func MarshalIndent(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decode data vào v, số được giữ dưới dạng json.Number
// để id và giá trị số của người dùng không bị đổi sang float khi ghi lại.
// Dùng làm JSONDecoder của Fiber.
// @params - dữ liệu JSON, con trỏ đích
// @returns - lỗi nếu có
func UnmarshalJSON(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// DecodeObject decode data thành map (số giữ dạng json.Number)
// @params - dữ liệu JSON
// @returns - map và lỗi nếu có
func DecodeObject(data []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := UnmarshalJSON(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
