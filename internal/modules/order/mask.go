package order

import "strings"

const maskToken = "***"

// maskPII redacts customer contact fields before an order reaches a vendor.
func maskPII(o *VendorOrder) *VendorOrder {
	if o == nil {
		return nil
	}
	masked := *o
	masked.CustomerName = maskName(o.CustomerName)
	masked.CustomerPhone = maskPhone(o.CustomerPhone)
	masked.CustomerAddress = maskAddress(o.CustomerAddress)
	return &masked
}

// maskName keeps the first word: "Nguyễn Văn An" → "Nguyễn ***".
func maskName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0] + " " + maskToken
}

// maskPhone keeps the first and last three digits: "0901234567" → "090****567".
func maskPhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) <= 6 {
		if digits == "" {
			return ""
		}
		return maskToken
	}
	return digits[:3] + strings.Repeat("*", len(digits)-6) + digits[len(digits)-3:]
}

// maskAddress keeps only the last comma-separated segment, usually the province.
func maskAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	i := strings.LastIndex(addr, ",")
	if i < 0 {
		return maskToken
	}
	return maskToken + ", " + strings.TrimSpace(addr[i+1:])
}
