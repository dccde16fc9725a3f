package util

// TruncateRightWithSuffix keeps the first n runes of text and only appends the suffix if truncation happens.
func TruncateRightWithSuffix(text string, n int, suffix string) string {
	if n <= 0 {
		return suffix
	}

	rs := make([]rune, 0, n)
	i := 0
	for _, r := range text {
		if i >= n {
			for _, r := range suffix {
				rs = append(rs, r)
			}
			return string(rs)
		}

		rs = append(rs, r)
		i++
	}

	return string(rs)
}
