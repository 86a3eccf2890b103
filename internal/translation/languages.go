package translation

// SupportedLanguages maps target language codes to the language names used
// in translation prompts. English plus fifteen others.
var SupportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"ur": "Urdu",
}

// Supported reports whether lang is a recognized target language code.
func Supported(lang string) bool {
	_, ok := SupportedLanguages[lang]
	return ok
}
