package folding

// asciiEquivalent maps lowercase BMP code points to the single ASCII letter
// their canonical+compatibility decomposition reduces to after stripping
// combining marks. Derived offline from the Unicode Character Database;
// code points whose decomposition does not reduce to exactly one ASCII
// letter (æ, ø, ß, đ, ł, ...) are deliberately absent and pass through.
var asciiEquivalent = map[rune]byte{
	// Latin-1 Supplement
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'ç': 'c',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ñ': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ý': 'y', 'ÿ': 'y',

	// Latin Extended-A
	'ā': 'a', 'ă': 'a', 'ą': 'a',
	'ć': 'c', 'ĉ': 'c', 'ċ': 'c', 'č': 'c',
	'ď': 'd',
	'ē': 'e', 'ĕ': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
	'ĝ': 'g', 'ğ': 'g', 'ġ': 'g', 'ģ': 'g',
	'ĥ': 'h',
	'ĩ': 'i', 'ī': 'i', 'ĭ': 'i', 'į': 'i',
	'ĵ': 'j',
	'ķ': 'k',
	'ĺ': 'l', 'ļ': 'l', 'ľ': 'l',
	'ń': 'n', 'ņ': 'n', 'ň': 'n',
	'ō': 'o', 'ŏ': 'o', 'ő': 'o',
	'ŕ': 'r', 'ŗ': 'r', 'ř': 'r',
	'ś': 's', 'ŝ': 's', 'ş': 's', 'š': 's',
	'ţ': 't', 'ť': 't',
	'ũ': 'u', 'ū': 'u', 'ŭ': 'u', 'ů': 'u', 'ű': 'u', 'ų': 'u',
	'ŵ': 'w',
	'ŷ': 'y',
	'ź': 'z', 'ż': 'z', 'ž': 'z',
	'ſ': 's', // long s

	// Latin Extended-B (code points with single-letter decompositions)
	'ǎ': 'a', 'ǐ': 'i', 'ǒ': 'o', 'ǔ': 'u',
	'ǖ': 'u', 'ǘ': 'u', 'ǚ': 'u', 'ǜ': 'u',
	'ǟ': 'a', 'ǡ': 'a', 'ǧ': 'g', 'ǩ': 'k',
	'ǫ': 'o', 'ǭ': 'o', 'ǰ': 'j', 'ǵ': 'g',
	'ǹ': 'n', 'ǻ': 'a',
	'ȁ': 'a', 'ȃ': 'a', 'ȅ': 'e', 'ȇ': 'e',
	'ȉ': 'i', 'ȋ': 'i', 'ȍ': 'o', 'ȏ': 'o',
	'ȑ': 'r', 'ȓ': 'r', 'ȕ': 'u', 'ȗ': 'u',
	'ș': 's', 'ț': 't', 'ȟ': 'h',
	'ȧ': 'a', 'ȩ': 'e',
	'ȫ': 'o', 'ȭ': 'o', 'ȯ': 'o', 'ȱ': 'o',
	'ȳ': 'y',

	// Latin Extended Additional
	'ḁ': 'a',
	'ḃ': 'b', 'ḅ': 'b', 'ḇ': 'b',
	'ḋ': 'd', 'ḍ': 'd', 'ḏ': 'd', 'ḑ': 'd', 'ḓ': 'd',
	'ḕ': 'e', 'ḗ': 'e', 'ḙ': 'e', 'ḛ': 'e', 'ḝ': 'e',
	'ḟ': 'f',
	'ḡ': 'g',
	'ḣ': 'h', 'ḥ': 'h', 'ḧ': 'h', 'ḩ': 'h', 'ḫ': 'h',
	'ḭ': 'i', 'ḯ': 'i',
	'ḱ': 'k', 'ḳ': 'k', 'ḵ': 'k',
	'ḷ': 'l', 'ḹ': 'l', 'ḻ': 'l', 'ḽ': 'l',
	'ḿ': 'm', 'ṁ': 'm', 'ṃ': 'm',
	'ṅ': 'n', 'ṇ': 'n', 'ṉ': 'n', 'ṋ': 'n',
	'ṍ': 'o', 'ṏ': 'o', 'ṑ': 'o', 'ṓ': 'o',
	'ṕ': 'p', 'ṗ': 'p',
	'ṙ': 'r', 'ṛ': 'r', 'ṝ': 'r', 'ṟ': 'r',
	'ṡ': 's', 'ṣ': 's', 'ṥ': 's', 'ṧ': 's', 'ṩ': 's',
	'ṫ': 't', 'ṭ': 't', 'ṯ': 't', 'ṱ': 't',
	'ṳ': 'u', 'ṵ': 'u', 'ṷ': 'u', 'ṹ': 'u', 'ṻ': 'u',
	'ṽ': 'v', 'ṿ': 'v',
	'ẁ': 'w', 'ẃ': 'w', 'ẅ': 'w', 'ẇ': 'w', 'ẉ': 'w',
	'ẋ': 'x', 'ẍ': 'x',
	'ẏ': 'y',
	'ẑ': 'z', 'ẓ': 'z', 'ẕ': 'z',
	'ẛ': 's',
	'ạ': 'a', 'ả': 'a', 'ấ': 'a', 'ầ': 'a', 'ẩ': 'a',
	'ẫ': 'a', 'ậ': 'a', 'ắ': 'a', 'ằ': 'a', 'ẳ': 'a',
	'ẵ': 'a', 'ặ': 'a',
	'ẹ': 'e', 'ẻ': 'e', 'ẽ': 'e', 'ế': 'e', 'ề': 'e',
	'ể': 'e', 'ễ': 'e', 'ệ': 'e',
	'ỉ': 'i', 'ị': 'i',
	'ọ': 'o', 'ỏ': 'o', 'ố': 'o', 'ồ': 'o', 'ổ': 'o',
	'ỗ': 'o', 'ộ': 'o', 'ớ': 'o', 'ờ': 'o', 'ở': 'o',
	'ỡ': 'o', 'ợ': 'o',
	'ụ': 'u', 'ủ': 'u', 'ứ': 'u', 'ừ': 'u', 'ử': 'u',
	'ữ': 'u', 'ự': 'u',
	'ỳ': 'y', 'ỵ': 'y', 'ỷ': 'y', 'ỹ': 'y',
}

func init() {
	// Fullwidth forms (compatibility decompositions to a-z).
	for r := rune(0xff41); r <= 0xff5a; r++ {
		asciiEquivalent[r] = byte('a' + r - 0xff41)
	}
}
