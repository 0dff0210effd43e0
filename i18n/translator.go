package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for issue and diagnostic codes.
// data provides optional values to embed in the message (for example "min"
// or "location").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":         "expected {expected}",
		"required":             "required property missing",
		"too_small":            "number must be greater than or equal to {min}",
		"too_big":              "number must be less than or equal to {max}",
		"too_short":            "length must be at least {min}",
		"too_long":             "length must be at most {max}",
		"pattern":              "does not match pattern {pattern}",
		"invalid_enum":         "must be one of the allowed values",
		"invalid_literal":      "must equal one of the literal values",
		"invalid_format":       "invalid {format}",
		"invalid_union":        "does not match any union option",
		"parse_error":          "parse error",
		"unsupported_location": "the {location} type is not supported; the only supported types are: {supported}",
		"non_object_schema":    "the {location} location requires an object schema",
	},
	"ja": {
		"invalid_type":         "型が不正です ({expected})",
		"required":             "必須プロパティが不足しています",
		"too_small":            "{min} 以上である必要があります",
		"too_big":              "{max} 以下である必要があります",
		"too_short":            "長さは {min} 以上である必要があります",
		"too_long":             "長さは {max} 以下である必要があります",
		"pattern":              "パターン {pattern} に一致しません",
		"invalid_enum":         "許可された値ではありません",
		"invalid_literal":      "リテラル値と一致しません",
		"invalid_format":       "{format} の形式が不正です",
		"invalid_union":        "いずれの候補にも一致しません",
		"parse_error":          "解析エラー",
		"unsupported_location": "{location} はサポートされていません (対応: {supported})",
		"non_object_schema":    "{location} にはオブジェクトスキーマが必要です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	for k, v := range data {
		tmpl = strings.ReplaceAll(tmpl, "{"+k+"}", v)
	}
	return tmpl
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation. A nil translator
// restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
