package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key" or "line").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "syntax":
			return "構文エラー"
		case "security_rejected":
			return "DOCTYPE などのマークアップ宣言は許可されていません"
		case "io":
			return "入出力エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "depth_exceeded":
			return "ネストが深すぎます"
		case "truncated":
			return "打ち切られました"
		case "encode_error":
			return "この形式では出力できません"
		}
	default: // "en"
		switch code {
		case "syntax":
			return "syntax error"
		case "security_rejected":
			return "markup declarations such as DOCTYPE are not allowed"
		case "io":
			return "input/output error"
		case "duplicate_key":
			return "duplicate key"
		case "depth_exceeded":
			return "nesting too deep"
		case "truncated":
			return "truncated"
		case "encode_error":
			return "cannot be serialized in this format"
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
