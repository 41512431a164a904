package vulkan

var end = "\x00"
var endChar byte = '\x00'

// VulkanSafeString NUL-terminates s so the driver sees a valid C string.
func VulkanSafeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func VulkanSafeStrings(list []string) []string {
	for i := range list {
		list[i] = VulkanSafeString(list[i])
	}
	return list
}
