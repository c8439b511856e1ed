package ranking

import "strings"

var auteurs = newSet(
	"stanley kubrick", "alfred hitchcock", "martin scorsese", "quentin tarantino",
	"christopher nolan", "david lynch", "wes anderson", "paul thomas anderson",
	"denis villeneuve", "coen brothers", "david fincher", "ridley scott",
	"francis ford coppola", "steven spielberg", "akira kurosawa", "ingmar bergman",
	"andrei tarkovsky", "federico fellini", "wong kar-wai", "terrence malick",
	"sofia coppola", "darren aronofsky", "guillermo del toro", "bong joon-ho",
	"park chan-wook", "hayao miyazaki", "charlie kaufman", "spike jonze",
	"alfonso cuarón", "alejandro gonzález iñárritu", "lars von trier", "michael haneke",
	"jean-luc godard", "orson welles", "billy wilder", "fritz lang", "f.w. murnau",
	"john ford", "sergio leone", "greta gerwig", "ari aster", "robert eggers",
	"yorgos lanthimos", "gaspar noé", "nicolas winding refn", "joel coen", "ethan coen",
	"yasujirō ozu", "satyajit ray", "agnès varda", "chantal akerman", "abbas kiarostami",
	"edward yang", "hou hsiao-hsien", "apichatpong weerasethakul", "béla tarr", "robert bresson",
)

var franchiseKeywords = []string{
	"marvel", "avengers", "spider-man", "batman", "superman", "dc extended",
	"fast & furious", "fast and furious", "transformers", "jurassic", "star wars", "harry potter",
	"lord of the rings", "hobbit", "pirates of the caribbean", "mission impossible", "mission: impossible",
	"james bond", "007", "x-men", "fantastic four", "teenage mutant ninja", "minions",
}

func newSet(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

// IsAuteur reports whether director is on the auteur list. Matching is
// case-insensitive and exact.
func IsAuteur(director string) bool {
	_, ok := auteurs[strings.ToLower(strings.TrimSpace(director))]
	return ok
}

// IsFranchise reports whether title contains a franchise keyword.
func IsFranchise(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range franchiseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
