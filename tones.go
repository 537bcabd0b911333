package inglify

// TranslationTones is the fixed, ordered set of registers every translation
// is produced in.
var TranslationTones = []TranslationTone{
	{Name: ToneFormal, Label: "Formal", Description: "Gaya bahasa resmi dan sopan"},
	{Name: ToneCasual, Label: "Casual", Description: "Gaya bahasa santai dan tidak kaku"},
	{Name: ToneFriendly, Label: "Friendly", Description: "Gaya bahasa ramah dan hangat"},
	{Name: ToneProfessional, Label: "Professional", Description: "Gaya bahasa profesional untuk bisnis"},
	{Name: ToneSimple, Label: "Simple", Description: "Gaya bahasa sederhana dan mudah dipahami"},
	{Name: TonePersuasive, Label: "Persuasive", Description: "Gaya bahasa yang meyakinkan dan mempengaruhi"},
}

// LookupTone returns the tone with the given name.
func LookupTone(name string) (TranslationTone, bool) {
	for _, t := range TranslationTones {
		if t.Name == name {
			return t, true
		}
	}
	return TranslationTone{}, false
}

// ToneNames returns the tone names in catalog order.
func ToneNames() []string {
	names := make([]string, len(TranslationTones))
	for i, t := range TranslationTones {
		names[i] = t.Name
	}
	return names
}
