package table

import "github.com/fatih/color"

var (
	colorRed   = color.New(color.FgRed)
	colorGreen = color.New(color.FgGreen)
	colorCyan  = color.New(color.FgCyan)
	colorBold  = color.New(color.Bold)
)

// ColorStatus colors probe outcomes.
func ColorStatus(val string) string {
	switch val {
	case "OK", "ok":
		return colorGreen.Sprint(val)
	case "FAIL", "error":
		return colorRed.Sprint(val)
	default:
		return val
	}
}

// ColorSource colors a config source annotation.
func ColorSource(val string) string {
	switch val {
	case "(global)":
		return colorCyan.Sprint(val)
	case "(repo)":
		return colorGreen.Sprint(val)
	default:
		return val
	}
}

// Title renders a bold heading.
func Title(s string) string {
	return colorBold.Sprint(s)
}
