package utility

import "time"

// DateTimeLayout là định dạng thời gian lưu trong createdAt/updatedAt (YYYY-MM-DD HH:mm:ss)
const DateTimeLayout = "2006-01-02 15:04:05"

// FormatDateTime định dạng t theo DateTimeLayout
// @params - thời điểm cần định dạng, múi giờ (nil = UTC)
// @returns - chuỗi thời gian
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateTimeLayout)
}
