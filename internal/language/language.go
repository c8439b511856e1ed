package language

import "strings"

type entry struct {
	code2   string // ISO 639-1, or TMDB's own code
	code3   string // ISO 639-2 primary
	alt3    string // ISO 639-2 bibliographic variant ("fre" vs "fra")
	display string
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Mandarin"},
	{"cn", "yue", "", "Cantonese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"bn", "ben", "", "Bengali"},
	{"ta", "tam", "", "Tamil"},
	{"te", "tel", "", "Telugu"},
	{"fa", "fas", "per", "Persian"},
	{"tr", "tur", "", "Turkish"},
	{"he", "heb", "", "Hebrew"},
	{"el", "ell", "gre", "Greek"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"cs", "ces", "cze", "Czech"},
	{"hu", "hun", "", "Hungarian"},
	{"ro", "ron", "rum", "Romanian"},
	{"sr", "srp", "", "Serbian"},
	{"ka", "kat", "geo", "Georgian"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
	{"is", "isl", "ice", "Icelandic"},
	{"th", "tha", "", "Thai"},
	{"vi", "vie", "", "Vietnamese"},
	{"id", "ind", "", "Indonesian"},
	{"tl", "tgl", "", "Tagalog"},
	{"xx", "zxx", "", "No Language"},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byName  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byName = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		byName[strings.ToLower(e.display)] = e
	}
	byName["chinese"] = byCode2["zh"]
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byName[code]; ok {
		return e
	}
	if primary, _, found := strings.Cut(code, "-"); found {
		return lookup(primary)
	}
	return nil
}

// Normalize returns the two-letter code for any recognized code, locale tag or
// language name. Unknown two-letter codes pass through lower-cased; anything
// else unrecognized yields "".
func Normalize(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 2 {
		return code
	}
	return ""
}

// IsForeign reports whether a film in this original language needs subtitles
// for an English-speaking viewer: any non-empty code that is not English.
func IsForeign(code string) bool {
	if strings.TrimSpace(code) == "" {
		return false
	}
	return Normalize(code) != "en"
}

// DisplayName returns a human-readable name, "Unknown" for empty input, or
// the upper-cased code when unrecognized.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
