package labels

import "strings"

// rtlLanguages holds lower-cased names and codes of right-to-left languages.
var rtlLanguages = map[string]bool{
	"arabic": true, "ar": true, "العربية": true,
	"hebrew": true, "he": true, "iw": true, "עברית": true,
	"persian": true, "farsi": true, "fa": true, "فارسی": true,
	"urdu": true, "ur": true, "اردو": true,
	"pashto": true, "ps": true,
	"sindhi": true, "sd": true,
	"yiddish": true, "yi": true,
	"dhivehi": true, "dv": true,
	"kurdish (sorani)": true, "sorani": true, "ckb": true,
	"uyghur": true, "ug": true,
}

// IsRTL reports whether language is written right to left. It accepts
// English names and ISO codes, ignores case, and ignores a region suffix
// such as "ar-EG" or "fa_IR".
func IsRTL(language string) bool {
	l := strings.ToLower(strings.TrimSpace(language))
	if l == "" {
		return false
	}
	if rtlLanguages[l] {
		return true
	}
	if i := strings.IndexAny(l, "-_"); i > 0 {
		return rtlLanguages[l[:i]]
	}
	return false
}

// Direction returns the HTML dir attribute value for language.
func Direction(language string) string {
	if IsRTL(language) {
		return "rtl"
	}
	return "ltr"
}
