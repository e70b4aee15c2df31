package templates

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"
)

func FuncMap() template.FuncMap {
	m := template.FuncMap{}
	mergeFuncs(m, displayFuncs())
	mergeFuncs(m, stringFuncs())
	return m
}

func mergeFuncs(dst, src template.FuncMap) {
	for k, v := range src {
		dst[k] = v
	}
}

func displayFuncs() template.FuncMap {
	return template.FuncMap{
		"riskColor": func(score int) string {
			switch {
			case score > 70:
				return "danger"
			case score > 40:
				return "warning"
			case score > 15:
				return "info"
			default:
				return "success"
			}
		},
		"categoryBadge": func(category interface{}) string {
			switch fmt.Sprintf("%v", category) {
			case "Scam":
				return "badge-danger"
			case "Suspicious":
				return "badge-warning"
			case "Promotional":
				return "badge-info"
			default:
				return "badge-success"
			}
		},
		"formatDuration": func(ms interface{}) string {
			if v, ok := ms.(float64); ok {
				return fmt.Sprintf("%.1f ms", v)
			}
			return ""
		},
		"formatDate": func(t interface{}) string {
			switch v := t.(type) {
			case time.Time:
				return v.Format("Jan 02, 2006 15:04 UTC")
			case string:
				return v
			default:
				return fmt.Sprintf("%v", t)
			}
		},
	}
}

func stringFuncs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"join": func(sep string, items []string) string {
			return strings.Join(items, sep)
		},
		"truncate": func(n int, s string) string {
			if utf8.RuneCountInString(s) <= n {
				return s
			}
			runes := []rune(s)
			return string(runes[:n]) + "…"
		},
	}
}
