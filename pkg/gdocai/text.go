package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout extracts text from a layout's text anchor segments
func textFromLayout(layout *documentaipb.Document_Page_Layout, fullText string) string {
	if layout == nil || layout.TextAnchor == nil {
		return ""
	}
	runes := []rune(fullText)
	var result strings.Builder
	for _, seg := range layout.TextAnchor.TextSegments {
		start := clamp(int(seg.StartIndex), 0, len(runes))
		end := clamp(int(seg.EndIndex), start, len(runes))
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}

// tokenText returns the token's text on a single line without the
// whitespace Document AI keeps for detected breaks.
func tokenText(layout *documentaipb.Document_Page_Layout, fullText string) string {
	txt := strings.TrimSpace(textFromLayout(layout, fullText))
	txt = strings.ReplaceAll(txt, "\r", "")
	return strings.ReplaceAll(txt, "\n", " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
