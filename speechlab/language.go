package speechlab

// apiLanguageOverrides maps short language codes to the region-qualified
// variants the create-project endpoint expects. The table is fixed and
// not user-configurable; it must be applied on every code path that
// builds a create-project request.
var apiLanguageOverrides = map[string]string{
	"es": "es_la",
}

// apiTargetLanguage returns the language code to send to the API for the
// requested target language. Codes without an override pass through
// unchanged.
func apiTargetLanguage(requested string) string {
	if mapped, ok := apiLanguageOverrides[requested]; ok {
		return mapped
	}
	return requested
}
