package tenant

import (
	"strings"
	"unicode"
)

// Slugify 将健身房名称规范化为库名安全的标识
// 小写化，连续的非字母数字字符折叠为单个下划线
// 保留Unicode字母（韩文等名称不做音译转写）
func Slugify(name string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	return b.String()
}
