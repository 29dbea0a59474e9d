package lexicon

// Default returns the built-in Hebrew lexicon: short words spelled from the
// twenty-two path letters (non-final letterforms only, matching the path
// symbols).
func Default() *Dictionary {
	d, err := New(defaultWords())
	if err != nil {
		// The builtin table is validated by tests; failure here is a
		// programmer error.
		panic(err)
	}
	return d
}

func defaultWords() []Word {
	return []Word{
		{Symbols: []string{"א", "ו", "ר"}, Name: "or", Meaning: "light", Category: "essence"},
		{Symbols: []string{"ח", "י"}, Name: "chai", Meaning: "life", Category: "essence"},
		{Symbols: []string{"א", "מ", "ת"}, Name: "emet", Meaning: "truth", Category: "essence"},
		{Symbols: []string{"ש", "ל", "ו", "מ"}, Name: "shalom", Meaning: "peace", Category: "spirit"},
		{Symbols: []string{"א", "ה", "ב", "ה"}, Name: "ahava", Meaning: "love", Category: "spirit"},
		{Symbols: []string{"ח", "ס", "ד"}, Name: "chesed", Meaning: "kindness", Category: "spirit"},
		{Symbols: []string{"ר", "ו", "ח"}, Name: "ruach", Meaning: "spirit", Category: "spirit"},
		{Symbols: []string{"ס", "ו", "ד"}, Name: "sod", Meaning: "secret", Category: "spirit"},
		{Symbols: []string{"ל", "ב"}, Name: "lev", Meaning: "heart", Category: "body"},
		{Symbols: []string{"י", "ד"}, Name: "yad", Meaning: "hand", Category: "body"},
		{Symbols: []string{"פ", "ה"}, Name: "peh", Meaning: "mouth", Category: "body"},
		{Symbols: []string{"ק", "ו", "ל"}, Name: "kol", Meaning: "voice", Category: "body"},
		{Symbols: []string{"א", "ש"}, Name: "esh", Meaning: "fire", Category: "nature"},
		{Symbols: []string{"מ", "י", "מ"}, Name: "mayim", Meaning: "water", Category: "nature"},
		{Symbols: []string{"ע", "צ"}, Name: "etz", Meaning: "tree", Category: "nature"},
		{Symbols: []string{"ג", "נ"}, Name: "gan", Meaning: "garden", Category: "nature"},
		{Symbols: []string{"נ", "ר"}, Name: "ner", Meaning: "lamp", Category: "nature"},
		{Symbols: []string{"ד", "ר", "כ"}, Name: "derekh", Meaning: "way", Category: "path"},
		{Symbols: []string{"ש", "מ"}, Name: "shem", Meaning: "name", Category: "path"},
		{Symbols: []string{"ט", "ו", "ב"}, Name: "tov", Meaning: "good", Category: "path"},
	}
}
