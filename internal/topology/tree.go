package topology

// Default returns the built-in Tree-of-Life topology: ten sephirot and the
// twenty-two lettered paths joining them, with the traditional letter
// attributions. Frequencies descend from Keter toward Malkhut so the crown
// oscillates fastest; couplings and impedances are tuned for a lively but
// stable network at the default engine constants.
func Default() *Tree {
	t, err := New(defaultNodes(), defaultPaths())
	if err != nil {
		// The builtin table is validated by tests; failure here is a
		// programmer error.
		panic(err)
	}
	return t
}

func defaultNodes() []Node {
	return []Node{
		{Name: "keter", Pillar: PillarBalance, NaturalFrequency: 0.96, BaseCoupling: 0.18},
		{Name: "chokmah", Pillar: PillarMercy, NaturalFrequency: 0.90, BaseCoupling: 0.16},
		{Name: "binah", Pillar: PillarSeverity, NaturalFrequency: 0.86, BaseCoupling: 0.16},
		{Name: "chesed", Pillar: PillarMercy, NaturalFrequency: 0.78, BaseCoupling: 0.15},
		{Name: "gevurah", Pillar: PillarSeverity, NaturalFrequency: 0.74, BaseCoupling: 0.15},
		{Name: "tiferet", Pillar: PillarBalance, NaturalFrequency: 0.68, BaseCoupling: 0.20},
		{Name: "netzach", Pillar: PillarMercy, NaturalFrequency: 0.58, BaseCoupling: 0.14},
		{Name: "hod", Pillar: PillarSeverity, NaturalFrequency: 0.54, BaseCoupling: 0.14},
		{Name: "yesod", Pillar: PillarBalance, NaturalFrequency: 0.46, BaseCoupling: 0.17},
		{Name: "malkhut", Pillar: PillarBalance, NaturalFrequency: 0.38, BaseCoupling: 0.12},
	}
}

func defaultPaths() []Path {
	return []Path{
		{Symbol: "א", SymbolName: "aleph", From: Keter, To: Chokmah, Class: ClassMother, Impedance: 0.10, ResonantFrequency: 0.93, Bandwidth: 0.30},
		{Symbol: "ב", SymbolName: "bet", From: Keter, To: Binah, Class: ClassDouble, Impedance: 0.14, ResonantFrequency: 0.91, Bandwidth: 0.24},
		{Symbol: "ג", SymbolName: "gimel", From: Keter, To: Tiferet, Class: ClassDouble, Impedance: 0.20, ResonantFrequency: 0.82, Bandwidth: 0.24},
		{Symbol: "ד", SymbolName: "dalet", From: Chokmah, To: Binah, Class: ClassDouble, Impedance: 0.16, ResonantFrequency: 0.88, Bandwidth: 0.24},
		{Symbol: "ה", SymbolName: "heh", From: Chokmah, To: Tiferet, Class: ClassSimple, Impedance: 0.22, ResonantFrequency: 0.79, Bandwidth: 0.18},
		{Symbol: "ו", SymbolName: "vav", From: Chokmah, To: Chesed, Class: ClassSimple, Impedance: 0.18, ResonantFrequency: 0.84, Bandwidth: 0.18},
		{Symbol: "ז", SymbolName: "zayin", From: Binah, To: Tiferet, Class: ClassSimple, Impedance: 0.22, ResonantFrequency: 0.77, Bandwidth: 0.18},
		{Symbol: "ח", SymbolName: "chet", From: Binah, To: Gevurah, Class: ClassSimple, Impedance: 0.18, ResonantFrequency: 0.80, Bandwidth: 0.18},
		{Symbol: "ט", SymbolName: "tet", From: Chesed, To: Gevurah, Class: ClassSimple, Impedance: 0.24, ResonantFrequency: 0.76, Bandwidth: 0.18},
		{Symbol: "י", SymbolName: "yod", From: Chesed, To: Tiferet, Class: ClassSimple, Impedance: 0.16, ResonantFrequency: 0.73, Bandwidth: 0.18},
		{Symbol: "כ", SymbolName: "kaf", From: Chesed, To: Netzach, Class: ClassDouble, Impedance: 0.20, ResonantFrequency: 0.68, Bandwidth: 0.24},
		{Symbol: "ל", SymbolName: "lamed", From: Gevurah, To: Tiferet, Class: ClassSimple, Impedance: 0.16, ResonantFrequency: 0.71, Bandwidth: 0.18},
		{Symbol: "מ", SymbolName: "mem", From: Gevurah, To: Hod, Class: ClassMother, Impedance: 0.12, ResonantFrequency: 0.64, Bandwidth: 0.30},
		{Symbol: "נ", SymbolName: "nun", From: Tiferet, To: Netzach, Class: ClassSimple, Impedance: 0.20, ResonantFrequency: 0.63, Bandwidth: 0.18},
		{Symbol: "ס", SymbolName: "samekh", From: Tiferet, To: Yesod, Class: ClassSimple, Impedance: 0.14, ResonantFrequency: 0.57, Bandwidth: 0.18},
		{Symbol: "ע", SymbolName: "ayin", From: Tiferet, To: Hod, Class: ClassSimple, Impedance: 0.20, ResonantFrequency: 0.61, Bandwidth: 0.18},
		{Symbol: "פ", SymbolName: "peh", From: Netzach, To: Hod, Class: ClassDouble, Impedance: 0.18, ResonantFrequency: 0.56, Bandwidth: 0.24},
		{Symbol: "צ", SymbolName: "tzadi", From: Netzach, To: Yesod, Class: ClassSimple, Impedance: 0.20, ResonantFrequency: 0.52, Bandwidth: 0.18},
		{Symbol: "ק", SymbolName: "qof", From: Netzach, To: Malkhut, Class: ClassSimple, Impedance: 0.26, ResonantFrequency: 0.48, Bandwidth: 0.18},
		{Symbol: "ר", SymbolName: "resh", From: Hod, To: Yesod, Class: ClassDouble, Impedance: 0.20, ResonantFrequency: 0.50, Bandwidth: 0.24},
		{Symbol: "ש", SymbolName: "shin", From: Hod, To: Malkhut, Class: ClassMother, Impedance: 0.12, ResonantFrequency: 0.46, Bandwidth: 0.30},
		{Symbol: "ת", SymbolName: "tav", From: Yesod, To: Malkhut, Class: ClassDouble, Impedance: 0.14, ResonantFrequency: 0.42, Bandwidth: 0.24},
	}
}
