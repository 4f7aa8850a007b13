package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "variant" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "unknown_variant":
			return "宣言されていないバリアントです"
		case "duplicate_output_key":
			return "出力キーが重複しています"
		case "duplicate_field":
			return "フィールドが重複しています"
		case "empty_schema":
			return "スキーマが空です"
		case "invalid_format":
			return "書式が不正です"
		case "parse_error":
			return "解析エラー"
		case "encode_error":
			return "エンコードエラー"
		case "overflow":
			return "桁あふれです"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "unknown_variant":
			return "undeclared variant"
		case "duplicate_output_key":
			return "duplicate output key"
		case "duplicate_field":
			return "duplicate field"
		case "empty_schema":
			return "empty schema"
		case "invalid_format":
			return "invalid format"
		case "parse_error":
			return "parse error"
		case "encode_error":
			return "encode error"
		case "overflow":
			return "overflow"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
