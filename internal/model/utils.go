package model

// TruncateString cắt chuỗi xuống độ dài tối đa cho phép nếu chuỗi dài
// hơn giới hạn. Cắt theo rune vì commit message thường chứa emoji và
// ký tự CJK.
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}
